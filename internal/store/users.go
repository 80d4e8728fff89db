package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"storefront-api/internal/models"
)

// MySQLUserStore is the 'users' table repository. Contacts and addresses are
// stored as JSON columns.
type MySQLUserStore struct {
	DB *sql.DB
}

func NewUserStore(db *sql.DB) *MySQLUserStore { return &MySQLUserStore{DB: db} }

const userColumns = `id, first_name, last_name, username, email, password_hash, role, contacts, addresses, created_at, updated_at`

func (s *MySQLUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *MySQLUserStore) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	column := "username"
	if strings.Contains(identifier, "@") {
		column = "email"
	}
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, identifier)
	return scanUser(row)
}

func (s *MySQLUserStore) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var one int
	err := s.DB.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE email = ? OR username = ? LIMIT 1`, email, username).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MySQLUserStore) Create(ctx context.Context, u *models.User) error {
	contacts, addresses, err := marshalProfile(u)
	if err != nil {
		return err
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO users
		(first_name, last_name, username, email, password_hash, role, contacts, addresses, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.FirstName, u.LastName, u.Username, u.Email, u.PasswordHash, u.Role,
		contacts, addresses, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	u.ID, err = res.LastInsertId()
	return err
}

func (s *MySQLUserStore) Update(ctx context.Context, u *models.User) error {
	contacts, addresses, err := marshalProfile(u)
	if err != nil {
		return err
	}
	u.UpdatedAt = time.Now()

	res, err := s.DB.ExecContext(ctx, `
		UPDATE users SET
		first_name = ?, last_name = ?, username = ?, email = ?, password_hash = ?,
		role = ?, contacts = ?, addresses = ?, updated_at = ?
		WHERE id = ?`,
		u.FirstName, u.LastName, u.Username, u.Email, u.PasswordHash,
		u.Role, contacts, addresses, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return requireRows(res)
}

func (s *MySQLUserStore) Delete(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// List pages over users matching the search against first or last name,
// mirroring the shared listing shape of the catalog endpoints.
func (s *MySQLUserStore) List(ctx context.Context, p ListParams) ([]models.User, Meta, error) {
	where := `WHERE LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?`
	pattern := p.SearchPattern()

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users `+where+
			` ORDER BY `+p.OrderClause()+` LIMIT ? OFFSET ?`,
		pattern, pattern, p.Limit, p.Offset(),
	)
	if err != nil {
		return nil, Meta{}, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, Meta{}, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, Meta{}, err
	}

	var total int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users `+where, pattern, pattern).Scan(&total); err != nil {
		return nil, Meta{}, err
	}
	return users, NewMeta(p, total), nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(sc scanner) (*models.User, error) {
	var u models.User
	var contacts, addresses []byte
	err := sc.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email,
		&u.PasswordHash, &u.Role, &contacts, &addresses,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(contacts) > 0 {
		_ = json.Unmarshal(contacts, &u.Contacts)
	}
	if len(addresses) > 0 {
		_ = json.Unmarshal(addresses, &u.Addresses)
	}
	return &u, nil
}

func marshalProfile(u *models.User) ([]byte, []byte, error) {
	contacts, err := json.Marshal(u.Contacts)
	if err != nil {
		return nil, nil, err
	}
	addresses, err := json.Marshal(u.Addresses)
	if err != nil {
		return nil, nil, err
	}
	return contacts, addresses, nil
}

// requireRows turns zero affected rows into ErrNotFound. The pool is opened
// with clientFoundRows, so an UPDATE that matches a row reports it even when
// no column value changed.
func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
