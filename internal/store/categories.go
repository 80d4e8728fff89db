package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"storefront-api/internal/models"
)

// MySQLCategoryStore is the 'categories' table repository.
type MySQLCategoryStore struct {
	DB *sql.DB
}

func NewCategoryStore(db *sql.DB) *MySQLCategoryStore { return &MySQLCategoryStore{DB: db} }

const categoryColumns = `id, title, description, slug, status, parent_id, cover_image, created_by, created_at, updated_at`

func (s *MySQLCategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

func (s *MySQLCategoryStore) Create(ctx context.Context, c *models.Category) error {
	if err := s.validateParent(ctx, c.ParentID); err != nil {
		return err
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO categories
		(title, description, slug, status, parent_id, cover_image, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Description, c.Slug, c.Status, c.ParentID, c.CoverImage,
		c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (s *MySQLCategoryStore) Update(ctx context.Context, c *models.Category) error {
	if err := s.validateParent(ctx, c.ParentID); err != nil {
		return err
	}
	c.UpdatedAt = time.Now()

	res, err := s.DB.ExecContext(ctx, `
		UPDATE categories SET
		title = ?, description = ?, slug = ?, status = ?, parent_id = ?, cover_image = ?, updated_at = ?
		WHERE id = ?`,
		c.Title, c.Description, c.Slug, c.Status, c.ParentID, c.CoverImage,
		c.UpdatedAt, c.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return requireRows(res)
}

// Delete removes the category; children keep existing with their parent
// reference cleared.
func (s *MySQLCategoryStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE categories SET parent_id = NULL WHERE parent_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := requireRows(res); err != nil {
		return err
	}
	return tx.Commit()
}

// List implements the shared pipeline for categories. The joins flatten the
// parent (null preserved when absent) and attach the products that reference
// each category on the page.
func (s *MySQLCategoryStore) List(ctx context.Context, p ListParams) ([]models.Category, Meta, error) {
	where := `WHERE LOWER(c.title) LIKE ?`
	pattern := p.SearchPattern()

	rows, err := s.DB.QueryContext(ctx, `
		SELECT c.id, c.title, c.description, c.slug, c.status, c.parent_id,
		       c.cover_image, c.created_by, c.created_at, c.updated_at,
		       p.id, p.title, p.description, p.slug, p.status, p.parent_id,
		       p.cover_image, p.created_by, p.created_at, p.updated_at
		FROM categories c
		LEFT JOIN categories p ON p.id = c.parent_id
		`+where+` ORDER BY c.`+p.OrderClause()+` LIMIT ? OFFSET ?`,
		pattern, p.Limit, p.Offset(),
	)
	if err != nil {
		return nil, Meta{}, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		var parent nullableCategory
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Slug, &c.Status, &c.ParentID,
			&c.CoverImage, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
			&parent.ID, &parent.Title, &parent.Description, &parent.Slug,
			&parent.Status, &parent.ParentID, &parent.CoverImage,
			&parent.CreatedBy, &parent.CreatedAt, &parent.UpdatedAt,
		); err != nil {
			return nil, Meta{}, err
		}
		c.Parent = parent.toCategory()
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, Meta{}, err
	}

	if err := s.attachProducts(ctx, categories); err != nil {
		return nil, Meta{}, err
	}

	var total int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories c `+where, pattern).Scan(&total); err != nil {
		return nil, Meta{}, err
	}
	return categories, NewMeta(p, total), nil
}

// attachProducts joins the owned products for a page of categories.
func (s *MySQLCategoryStore) attachProducts(ctx context.Context, categories []models.Category) error {
	for i := range categories {
		c := &categories[i]
		c.Products = []models.Product{}
		rows, err := s.DB.QueryContext(ctx, `
			SELECT `+prefixedProductColumns("pr")+`
			FROM product_categories pc
			JOIN products pr ON pr.id = pc.product_id
			WHERE pc.category_id = ?`, c.ID)
		if err != nil {
			return err
		}
		for rows.Next() {
			prod, err := scanProduct(rows)
			if err != nil {
				rows.Close()
				return err
			}
			c.Products = append(c.Products, *prod)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}
	return nil
}

func prefixedProductColumns(alias string) string {
	return alias + ".id, " + alias + ".title, " + alias + ".description, " +
		alias + ".slug, " + alias + ".status, " + alias + ".stock, " +
		alias + ".price, " + alias + ".image, " + alias + ".created_by, " +
		alias + ".created_at, " + alias + ".updated_at"
}

// validateParent checks that a non-nil parent reference exists. Cycles are
// not prevented here, per the documented model contract.
func (s *MySQLCategoryStore) validateParent(ctx context.Context, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	var one int
	err := s.DB.QueryRowContext(ctx,
		`SELECT 1 FROM categories WHERE id = ?`, *parentID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return &ValidationError{Msg: "parent category does not exist"}
	}
	return err
}

// nullableCategory buffers a LEFT JOINed parent row.
type nullableCategory struct {
	ID          sql.NullInt64
	Title       sql.NullString
	Description sql.NullString
	Slug        sql.NullString
	Status      sql.NullString
	ParentID    sql.NullInt64
	CoverImage  sql.NullString
	CreatedBy   sql.NullInt64
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

func (n nullableCategory) toCategory() *models.Category {
	if !n.ID.Valid {
		return nil
	}
	c := &models.Category{
		ID:          n.ID.Int64,
		Title:       n.Title.String,
		Description: n.Description.String,
		Slug:        n.Slug.String,
		Status:      models.Status(n.Status.String),
		CoverImage:  n.CoverImage.String,
		CreatedAt:   n.CreatedAt.Time,
		UpdatedAt:   n.UpdatedAt.Time,
	}
	if n.ParentID.Valid {
		pid := n.ParentID.Int64
		c.ParentID = &pid
	}
	if n.CreatedBy.Valid {
		uid := n.CreatedBy.Int64
		c.CreatedBy = &uid
	}
	return c
}

func scanCategory(sc scanner) (*models.Category, error) {
	var c models.Category
	err := sc.Scan(
		&c.ID, &c.Title, &c.Description, &c.Slug, &c.Status, &c.ParentID,
		&c.CoverImage, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
