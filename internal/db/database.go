package db

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Vedansh-Harish-Ail/public-issue-reporting-portal/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

type Database struct {
	Pool *pgxpool.Pool
}

func New() (*Database, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return NewWithURL(dbURL)
}

func NewWithURL(dbURL string) (*Database, error) {
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	db := &Database{Pool: pool}
	if err := db.initSchema(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *Database) initSchema() error {
	ctx := context.Background()

	schema := `
	CREATE TABLE IF NOT EXISTS panchayath (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		district TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		mobile TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS issues (
		id SERIAL PRIMARY KEY,
		panchayath_id INT NOT NULL REFERENCES panchayath(id),
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS notices (
		id SERIAL PRIMARY KEY,
		panchayath_id INT NOT NULL REFERENCES panchayath(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS admin (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		panchayath_id INT NOT NULL REFERENCES panchayath(id)
	);

	CREATE INDEX IF NOT EXISTS idx_issues_panchayath ON issues(panchayath_id);
	CREATE INDEX IF NOT EXISTS idx_notices_panchayath ON notices(panchayath_id);
	`

	_, err := db.Pool.Exec(ctx, schema)
	if err != nil {
		return err
	}

	// Columns the schema grew over time. Legacy rows keep NULLs here.
	_, err = db.Pool.Exec(ctx, "ALTER TABLE issues ADD COLUMN IF NOT EXISTS photo_path TEXT")
	if err != nil {
		return err
	}

	_, err = db.Pool.Exec(ctx, "ALTER TABLE issues ADD COLUMN IF NOT EXISTS user_id INT REFERENCES users(id)")
	if err != nil {
		return err
	}

	_, err = db.Pool.Exec(ctx, "ALTER TABLE notices ADD COLUMN IF NOT EXISTS banner_path TEXT")
	if err != nil {
		return err
	}

	return nil
}

func (db *Database) CreatePanchayath(ctx context.Context, name, district, state string) (*models.Panchayath, error) {
	var p models.Panchayath

	err := db.Pool.QueryRow(ctx,
		"INSERT INTO panchayath (name, district, state) VALUES ($1, $2, $3) RETURNING id, name, district, state",
		name, district, state,
	).Scan(&p.ID, &p.Name, &p.District, &p.State)

	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (db *Database) GetAllPanchayaths(ctx context.Context) ([]models.Panchayath, error) {
	rows, err := db.Pool.Query(ctx,
		"SELECT id, name, district, state FROM panchayath ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var panchayaths []models.Panchayath
	for rows.Next() {
		var p models.Panchayath
		if err := rows.Scan(&p.ID, &p.Name, &p.District, &p.State); err != nil {
			return nil, err
		}
		panchayaths = append(panchayaths, p)
	}

	return panchayaths, rows.Err()
}

func (db *Database) CountPanchayaths(ctx context.Context) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM panchayath").Scan(&count)
	return count, err
}

// GetStats aggregates the home-page counters. The resolution rate is an
// integer truncation of resolved/total*100 and stays 0 when there are no
// issues at all.
func (db *Database) GetStats(ctx context.Context) (*models.Stats, error) {
	var s models.Stats

	err := db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM panchayath),
			(SELECT COUNT(*) FROM issues),
			(SELECT COUNT(*) FROM issues WHERE status = 'Completed'),
			(SELECT COUNT(*) FROM users)
	`).Scan(&s.TotalPanchayaths, &s.TotalIssues, &s.ResolvedIssues, &s.TotalCitizens)

	if err != nil {
		return nil, err
	}

	if s.TotalIssues > 0 {
		s.ResolutionRate = s.ResolvedIssues * 100 / s.TotalIssues
	}

	return &s, nil
}

func (db *Database) CreateUser(ctx context.Context, name, email, mobile, passwordHash string) (*models.User, error) {
	var user models.User

	err := db.Pool.QueryRow(ctx,
		`INSERT INTO users (name, email, mobile, password_hash)
		 VALUES ($1, $2, $3, $4) RETURNING id, name, email, mobile, created_at`,
		name, email, mobile, passwordHash,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Mobile, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &user, nil
}

func (db *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := db.Pool.QueryRow(ctx,
		"SELECT id, name, email, mobile, password_hash, created_at FROM users WHERE email = $1",
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Mobile, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (db *Database) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User

	err := db.Pool.QueryRow(ctx,
		"SELECT id, name, email, mobile, created_at FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Mobile, &user.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (db *Database) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (db *Database) CreateAdmin(ctx context.Context, username, passwordHash string, panchayathID int) (*models.Admin, error) {
	var admin models.Admin

	err := db.Pool.QueryRow(ctx,
		`INSERT INTO admin (username, password_hash, panchayath_id)
		 VALUES ($1, $2, $3) RETURNING id, username, panchayath_id`,
		username, passwordHash, panchayathID,
	).Scan(&admin.ID, &admin.Username, &admin.PanchayathID)

	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (db *Database) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin

	err := db.Pool.QueryRow(ctx,
		"SELECT id, username, password_hash, panchayath_id FROM admin WHERE username = $1",
		username,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.PanchayathID)

	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (db *Database) CreateIssue(ctx context.Context, issue *models.Issue) error {
	return db.Pool.QueryRow(ctx,
		`INSERT INTO issues (panchayath_id, category, description, location, photo_path, status, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`,
		issue.PanchayathID, issue.Category, issue.Description, issue.Location,
		issue.PhotoPath, issue.Status, issue.UserID,
	).Scan(&issue.ID, &issue.CreatedAt)
}

func (db *Database) GetIssuesByUser(ctx context.Context, userID int) ([]models.Issue, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT i.id, i.panchayath_id, i.category, i.description, i.location,
		        i.photo_path, i.status, i.user_id, i.created_at, p.name
		 FROM issues i
		 JOIN panchayath p ON p.id = i.panchayath_id
		 WHERE i.user_id = $1
		 ORDER BY i.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIssues(rows, false)
}

func (db *Database) GetAllIssues(ctx context.Context) ([]models.Issue, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT i.id, i.panchayath_id, i.category, i.description, i.location,
		        i.photo_path, i.status, i.user_id, i.created_at, p.name, u.name
		 FROM issues i
		 JOIN panchayath p ON p.id = i.panchayath_id
		 LEFT JOIN users u ON u.id = i.user_id
		 ORDER BY i.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIssues(rows, true)
}

func (db *Database) GetIssuesByPanchayath(ctx context.Context, panchayathID int) ([]models.Issue, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT i.id, i.panchayath_id, i.category, i.description, i.location,
		        i.photo_path, i.status, i.user_id, i.created_at, p.name, u.name
		 FROM issues i
		 JOIN panchayath p ON p.id = i.panchayath_id
		 LEFT JOIN users u ON u.id = i.user_id
		 WHERE i.panchayath_id = $1
		 ORDER BY i.created_at DESC`,
		panchayathID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIssues(rows, true)
}

// GetIssueForPanchayath looks up one issue scoped to the given panchayath.
// An id belonging to another tenant comes back as pgx.ErrNoRows.
func (db *Database) GetIssueForPanchayath(ctx context.Context, id, panchayathID int) (*models.Issue, error) {
	var i models.Issue

	err := db.Pool.QueryRow(ctx,
		`SELECT i.id, i.panchayath_id, i.category, i.description, i.location,
		        i.photo_path, i.status, i.user_id, i.created_at, p.name, u.name
		 FROM issues i
		 JOIN panchayath p ON p.id = i.panchayath_id
		 LEFT JOIN users u ON u.id = i.user_id
		 WHERE i.id = $1 AND i.panchayath_id = $2`,
		id, panchayathID,
	).Scan(&i.ID, &i.PanchayathID, &i.Category, &i.Description, &i.Location,
		&i.PhotoPath, &i.Status, &i.UserID, &i.CreatedAt, &i.PanchayathName, &i.ReporterName)

	if err != nil {
		return nil, err
	}

	return &i, nil
}

// UpdateIssueStatus sets the status of an issue owned by the given panchayath
// and reports whether a row actually matched.
func (db *Database) UpdateIssueStatus(ctx context.Context, id, panchayathID int, status string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		"UPDATE issues SET status = $1 WHERE id = $2 AND panchayath_id = $3",
		status, id, panchayathID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (db *Database) CreateNotice(ctx context.Context, notice *models.Notice) error {
	return db.Pool.QueryRow(ctx,
		`INSERT INTO notices (panchayath_id, title, description, banner_path)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		notice.PanchayathID, notice.Title, notice.Description, notice.BannerPath,
	).Scan(&notice.ID, &notice.CreatedAt)
}

func (db *Database) GetAllNotices(ctx context.Context) ([]models.Notice, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT n.id, n.panchayath_id, n.title, n.description, n.banner_path, n.created_at, p.name
		 FROM notices n
		 JOIN panchayath p ON p.id = n.panchayath_id
		 ORDER BY n.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotices(rows, true)
}

func (db *Database) GetNoticesByPanchayath(ctx context.Context, panchayathID int) ([]models.Notice, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT n.id, n.panchayath_id, n.title, n.description, n.banner_path, n.created_at
		 FROM notices n
		 WHERE n.panchayath_id = $1
		 ORDER BY n.created_at DESC`,
		panchayathID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotices(rows, false)
}

// DeleteNotice removes a notice only when it belongs to the given panchayath
// and reports whether a row matched. A cross-tenant id deletes nothing.
func (db *Database) DeleteNotice(ctx context.Context, id, panchayathID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		"DELETE FROM notices WHERE id = $1 AND panchayath_id = $2",
		id, panchayathID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (db *Database) GetNotice(ctx context.Context, id int) (*models.Notice, error) {
	var n models.Notice

	err := db.Pool.QueryRow(ctx,
		"SELECT id, panchayath_id, title, description, banner_path, created_at FROM notices WHERE id = $1",
		id,
	).Scan(&n.ID, &n.PanchayathID, &n.Title, &n.Description, &n.BannerPath, &n.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &n, nil
}

func (db *Database) Close() {
	db.Pool.Close()
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanIssues(rows pgxRows, withReporter bool) ([]models.Issue, error) {
	var issues []models.Issue
	for rows.Next() {
		var i models.Issue
		dest := []any{&i.ID, &i.PanchayathID, &i.Category, &i.Description, &i.Location,
			&i.PhotoPath, &i.Status, &i.UserID, &i.CreatedAt, &i.PanchayathName}
		if withReporter {
			dest = append(dest, &i.ReporterName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	return issues, rows.Err()
}

func scanNotices(rows pgxRows, withPanchayath bool) ([]models.Notice, error) {
	var notices []models.Notice
	for rows.Next() {
		var n models.Notice
		dest := []any{&n.ID, &n.PanchayathID, &n.Title, &n.Description, &n.BannerPath, &n.CreatedAt}
		if withPanchayath {
			dest = append(dest, &n.PanchayathName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}
