package folio

const certificationColumns = `id, name, organization, issue_date, expiry_date, credential_id, credential_url, image, skills`

func scanCertification(row interface{ Scan(...any) error }) (Certification, error) {
	var c Certification
	var skills string
	err := row.Scan(&c.ID, &c.Name, &c.Organization, &c.IssueDate, &c.ExpiryDate,
		&c.CredentialID, &c.CredentialURL, &c.Image, &skills)
	if err != nil {
		return Certification{}, err
	}
	// Dates are stored as full dates ("2024-01-01") but exposed at month
	// granularity, matching what clients submit.
	c.IssueDate = yearMonth(c.IssueDate)
	c.ExpiryDate = yearMonth(c.ExpiryDate)
	c.Skills = parseTags(skills)
	return c, nil
}

// ListCertifications returns all certifications in insertion order.
func (s *Store) ListCertifications() ([]Certification, error) {
	rows, err := s.db.Query(`SELECT ` + certificationColumns + ` FROM certifications ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	certifications := []Certification{}
	for rows.Next() {
		c, err := scanCertification(rows)
		if err != nil {
			return nil, err
		}
		certifications = append(certifications, c)
	}
	return certifications, rows.Err()
}

// GetCertification returns a single certification by id.
func (s *Store) GetCertification(id int64) (Certification, error) {
	return scanCertification(s.db.QueryRow(`SELECT `+certificationColumns+` FROM certifications WHERE id = ?`, id))
}

// CreateCertification inserts a certification and returns it with the
// server-assigned id.
func (s *Store) CreateCertification(c Certification) (Certification, error) {
	res, err := s.db.Exec(`INSERT INTO certifications (name, organization, issue_date, expiry_date, credential_id, credential_url, image, skills)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Organization, monthToDate(c.IssueDate), monthToDate(c.ExpiryDate), c.CredentialID, c.CredentialURL, c.Image, joinList(c.Skills))
	if err != nil {
		return Certification{}, err
	}
	c.ID, err = res.LastInsertId()
	return c, err
}

// UpdateCertification overwrites the certification identified by c.ID.
func (s *Store) UpdateCertification(c Certification) error {
	_, err := s.db.Exec(`UPDATE certifications SET name = ?, organization = ?, issue_date = ?, expiry_date = ?, credential_id = ?, credential_url = ?, image = ?, skills = ? WHERE id = ?`,
		c.Name, c.Organization, monthToDate(c.IssueDate), monthToDate(c.ExpiryDate), c.CredentialID, c.CredentialURL, c.Image, joinList(c.Skills), c.ID)
	return err
}

// DeleteCertification removes a certification by id.
func (s *Store) DeleteCertification(id int64) error {
	_, err := s.db.Exec(`DELETE FROM certifications WHERE id = ?`, id)
	return err
}
