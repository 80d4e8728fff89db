package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-api/internal/models"
)

// MySQLProductStore is the 'products' table repository. Category links live
// in the product_categories join table.
type MySQLProductStore struct {
	DB *sql.DB
}

func NewProductStore(db *sql.DB) *MySQLProductStore { return &MySQLProductStore{DB: db} }

const productColumns = `id, title, description, slug, status, stock, price, image, created_by, created_at, updated_at`

func (s *MySQLProductStore) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}
	if err := s.attachCategories(ctx, []*models.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *MySQLProductStore) Create(ctx context.Context, p *models.Product, categoryIDs []int64) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO products
		(title, description, slug, status, stock, price, image, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Slug, p.Status, p.Stock, p.Price, p.Image,
		p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}

	if err := insertCategoryLinks(ctx, tx, p.ID, categoryIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *MySQLProductStore) Update(ctx context.Context, p *models.Product, categoryIDs *[]int64) error {
	p.UpdatedAt = time.Now()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products SET
		title = ?, description = ?, slug = ?, status = ?, stock = ?, price = ?, image = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Description, p.Slug, p.Status, p.Stock, p.Price, p.Image,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if err := requireRows(res); err != nil {
		return err
	}

	if categoryIDs != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM product_categories WHERE product_id = ?`, p.ID); err != nil {
			return err
		}
		if err := insertCategoryLinks(ctx, tx, p.ID, *categoryIDs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *MySQLProductStore) Delete(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// List implements the shared search/sort/paginate/join pipeline: filter by
// case-insensitive title substring, sort, skip/take, then join categories for
// the returned page.
func (s *MySQLProductStore) List(ctx context.Context, p ListParams) ([]models.Product, Meta, error) {
	where := `WHERE LOWER(title) LIKE ?`
	pattern := p.SearchPattern()

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products `+where+
			` ORDER BY `+p.OrderClause()+` LIMIT ? OFFSET ?`,
		pattern, p.Limit, p.Offset(),
	)
	if err != nil {
		return nil, Meta{}, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		prod, err := scanProduct(rows)
		if err != nil {
			return nil, Meta{}, err
		}
		products = append(products, *prod)
	}
	if err := rows.Err(); err != nil {
		return nil, Meta{}, err
	}

	refs := make([]*models.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	if err := s.attachCategories(ctx, refs); err != nil {
		return nil, Meta{}, err
	}

	var total int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products `+where, pattern).Scan(&total); err != nil {
		return nil, Meta{}, err
	}
	return products, NewMeta(p, total), nil
}

// attachCategories joins the categories for a page of products in one query.
func (s *MySQLProductStore) attachCategories(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}
	byID := make(map[int64]*models.Product, len(products))
	args := make([]any, 0, len(products))
	placeholders := make([]string, 0, len(products))
	for _, p := range products {
		p.Categories = []models.Category{}
		byID[p.ID] = p
		args = append(args, p.ID)
		placeholders = append(placeholders, "?")
	}

	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf(`
		SELECT pc.product_id, c.id, c.title, c.description, c.slug, c.status,
		       c.parent_id, c.cover_image, c.created_by, c.created_at, c.updated_at
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id IN (%s)`, strings.Join(placeholders, ",")),
		args...,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var c models.Category
		if err := rows.Scan(
			&productID, &c.ID, &c.Title, &c.Description, &c.Slug, &c.Status,
			&c.ParentID, &c.CoverImage, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return err
		}
		if p, ok := byID[productID]; ok {
			p.Categories = append(p.Categories, c)
		}
	}
	return rows.Err()
}

func insertCategoryLinks(ctx context.Context, tx *sql.Tx, productID int64, categoryIDs []int64) error {
	for _, cid := range categoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES (?, ?)`,
			productID, cid); err != nil {
			return translateError(err)
		}
	}
	return nil
}

func scanProduct(sc scanner) (*models.Product, error) {
	var p models.Product
	err := sc.Scan(
		&p.ID, &p.Title, &p.Description, &p.Slug, &p.Status,
		&p.Stock, &p.Price, &p.Image, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
