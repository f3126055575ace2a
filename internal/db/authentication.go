package db

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/askhub/askhub/internal/models"
	"github.com/askhub/askhub/internal/utils"
)

func (sdb *SharedDB) CreateUser(ctx context.Context, user *models.User, passwd string) error {
	// Check email format
	if !utils.ValidateEmail(user.Email) {
		return models.ErrInvalidFormat
	}

	if !validatePasswd(passwd) {
		return models.ErrWeakPasswd
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passwd), sdb.bcryptCost)
	if err != nil {
		return err
	}

	err = insertUser(ctx, sdb.db, user, hash)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key" {
		return models.ErrEmailAlreadyUsed
	}
	return err
}

func (sdb *SharedDB) Login(ctx context.Context, email string, passwd string) (token string, err error) {
	sql, args, _ := psql.
		Select("id", "passwd_hash").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()

	var data struct {
		ID         int
		PasswdHash string
	}
	err = pgxscan.Get(ctx, sdb.db, &data, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: no user with this email", models.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(data.PasswdHash), []byte(passwd)); err != nil {
		return "", err
	}

	// Insert a new token
	token = uuid.NewString()
	sql, args, _ = psql.
		Insert("tokens").
		Columns("user_id", "token").
		Values(data.ID, token).
		ToSql()

	_, err = sdb.db.Exec(ctx, sql, args...)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (sdb *SharedDB) Signout(ctx context.Context, token string) error {
	_, err := sdb.db.Exec(ctx, "DELETE FROM tokens WHERE tokens.token = $1", token)
	return err
}

// UserByToken resolves a bearer token to the user it was issued to.
func (sdb *SharedDB) UserByToken(ctx context.Context, token string) (*models.User, error) {
	sql, args, _ := psql.
		Select("users.id", "users.name", "users.email").
		From("users").
		Join("tokens ON tokens.user_id = users.id").
		Where(sq.Eq{"tokens.token": token}).
		ToSql()

	var user models.User
	err := pgxscan.Get(ctx, sdb.db, &user, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: token", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (sdb *SharedDB) GetUser(ctx context.Context, id int) (*models.User, error) {
	sql, args, _ := psql.
		Select("id", "name", "email").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()

	var user models.User
	err := pgxscan.Get(ctx, sdb.db, &user, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func validatePasswd(passwd string) bool {
	if len(passwd) < 8 || len(passwd) > 64 {
		return false
	}

	containsLetter := false
	containsNumber := false
	containsSpecial := false
	for _, r := range passwd {
		if !unicode.IsPrint(r) {
			return false
		}

		if unicode.IsLetter(r) {
			containsLetter = true
		} else if unicode.IsNumber(r) {
			containsNumber = true
		} else {
			// If it's not a number and not a letter, it's special
			containsSpecial = true
		}
	}
	return containsLetter && containsNumber && containsSpecial
}

func insertUser(ctx context.Context, db DBTX, user *models.User, hash []byte) error {
	sql, args, _ := psql.
		Insert("users").
		Columns("name", "email", "passwd_hash").
		Values(user.Name, user.Email, hash).
		Suffix("RETURNING id").
		ToSql()

	row := db.QueryRow(ctx, sql, args...)
	return row.Scan(&user.ID)
}
