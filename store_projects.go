package folio

const projectColumns = `id, title, description, image, tags, link, category`

func scanProject(row interface{ Scan(...any) error }) (Project, error) {
	var p Project
	var tags string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &tags, &p.Link, &p.Category)
	if err != nil {
		return Project{}, err
	}
	p.Tags = parseTags(tags)
	return p, nil
}

// ListProjects returns all projects in insertion order.
func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(`SELECT ` + projectColumns + ` FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	projects := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject returns a single project by id.
func (s *Store) GetProject(id int64) (Project, error) {
	return scanProject(s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
}

// CreateProject inserts a project and returns it with the server-assigned id.
func (s *Store) CreateProject(p Project) (Project, error) {
	res, err := s.db.Exec(`INSERT INTO projects (title, description, image, tags, link, category) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Image, joinList(p.Tags), p.Link, p.Category)
	if err != nil {
		return Project{}, err
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

// UpdateProject overwrites the project identified by p.ID.
func (s *Store) UpdateProject(p Project) error {
	_, err := s.db.Exec(`UPDATE projects SET title = ?, description = ?, image = ?, tags = ?, link = ?, category = ? WHERE id = ?`,
		p.Title, p.Description, p.Image, joinList(p.Tags), p.Link, p.Category, p.ID)
	return err
}

// DeleteProject removes a project by id.
func (s *Store) DeleteProject(id int64) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	return err
}
