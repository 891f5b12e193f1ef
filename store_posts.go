package folio

import "database/sql"

const postColumns = `id, title, slug, content, excerpt, cover_image_url, category, status, reading_time, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.CoverImageURL,
		&p.Category, &p.Status, &p.ReadingTime, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) collectPosts(rows *sql.Rows) ([]Post, error) {
	defer rows.Close()
	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns every post ordered by creation date descending.
func (s *Store) ListPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return s.collectPosts(rows)
}

// ListPublishedPosts returns published posts ordered by creation date descending.
func (s *Store) ListPublishedPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT `+postColumns+` FROM posts WHERE status = ? ORDER BY created_at DESC, id DESC`, StatusPublished)
	if err != nil {
		return nil, err
	}
	return s.collectPosts(rows)
}

// GetPostBySlug returns a single post by slug.
func (s *Store) GetPostBySlug(slug string) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

// GetPost returns a single post by id.
func (s *Store) GetPost(id int64) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
}

// CreatePost inserts a post and returns it with the server-assigned id.
func (s *Store) CreatePost(p Post) (Post, error) {
	res, err := s.db.Exec(`INSERT INTO posts (title, slug, content, excerpt, cover_image_url, category, status, reading_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.CoverImageURL, p.Category, p.Status, p.ReadingTime, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return Post{}, err
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

// UpdatePost overwrites the post identified by p.ID.
func (s *Store) UpdatePost(p Post) error {
	_, err := s.db.Exec(`UPDATE posts SET title = ?, slug = ?, content = ?, excerpt = ?, cover_image_url = ?, category = ?, status = ?, reading_time = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.CoverImageURL, p.Category, p.Status, p.ReadingTime, p.UpdatedAt, p.ID)
	return err
}

// DeletePost removes a post by id. Deleting an absent row is not an error.
func (s *Store) DeletePost(id int64) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}
