package folio

import "encoding/json"

const experienceColumns = `id, title, organization, period, description, type, image, images, start_date, tags, sort_order`

func scanExperience(row interface{ Scan(...any) error }) (Experience, error) {
	var e Experience
	var images, tags string
	err := row.Scan(&e.ID, &e.Title, &e.Organization, &e.Period, &e.Description,
		&e.Type, &e.Image, &images, &e.StartDate, &tags, &e.SortOrder)
	if err != nil {
		return Experience{}, err
	}
	e.Images = decodeImages(images)
	e.Tags = parseTags(tags)
	if e.Image == "" && len(e.Images) > 0 {
		e.Image = e.Images[0]
	}
	return e, nil
}

func decodeImages(s string) []string {
	var out []string
	if s == "" {
		return []string{}
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []string{}
	}
	return out
}

func encodeImages(images []string) string {
	if len(images) > maxGalleryLen {
		images = images[:maxGalleryLen]
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// ListExperiences returns all experiences, newest start date first; ties break
// on the explicit sort order, then id.
func (s *Store) ListExperiences() ([]Experience, error) {
	rows, err := s.db.Query(`SELECT ` + experienceColumns + ` FROM experiences ORDER BY start_date DESC, sort_order DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	experiences := []Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, e)
	}
	return experiences, rows.Err()
}

// GetExperience returns a single experience by id.
func (s *Store) GetExperience(id int64) (Experience, error) {
	return scanExperience(s.db.QueryRow(`SELECT `+experienceColumns+` FROM experiences WHERE id = ?`, id))
}

// CreateExperience inserts an experience and returns it with the server-assigned id.
func (s *Store) CreateExperience(e Experience) (Experience, error) {
	res, err := s.db.Exec(`INSERT INTO experiences (title, organization, period, description, type, image, images, start_date, tags, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.Organization, e.Period, e.Description, e.Type, e.Image, encodeImages(e.Images), e.StartDate, joinList(e.Tags), e.SortOrder)
	if err != nil {
		return Experience{}, err
	}
	e.ID, err = res.LastInsertId()
	return e, err
}

// UpdateExperience overwrites the experience identified by e.ID.
func (s *Store) UpdateExperience(e Experience) error {
	_, err := s.db.Exec(`UPDATE experiences SET title = ?, organization = ?, period = ?, description = ?, type = ?, image = ?, images = ?, start_date = ?, tags = ?, sort_order = ? WHERE id = ?`,
		e.Title, e.Organization, e.Period, e.Description, e.Type, e.Image, encodeImages(e.Images), e.StartDate, joinList(e.Tags), e.SortOrder, e.ID)
	return err
}

// DeleteExperience removes an experience by id.
func (s *Store) DeleteExperience(id int64) error {
	_, err := s.db.Exec(`DELETE FROM experiences WHERE id = ?`, id)
	return err
}
