// Package users owns account storage and the register, login, lookup and
// profile update operations behind the HTTP API.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/dbx"
	"github.com/dmitrijs2005/gophprofile/internal/server/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	// bcrypt only hashes the first 72 bytes and refuses longer input.
	maxPasswordBytes = 72
	bcryptCost       = bcrypt.DefaultCost
)

// RepositoryFactory binds a Repository to a handle, so the same queries can
// run on the pool or inside a transaction.
type RepositoryFactory func(db dbx.DBTX) Repository

type Service struct {
	db                    *sql.DB
	repos                 RepositoryFactory
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	newID                 func() string
}

func NewService(db *sql.DB, repos RepositoryFactory, secretKey string, tokenValidity time.Duration) *Service {
	return &Service{
		db:                    db,
		repos:                 repos,
		jwtSecret:             []byte(secretKey),
		tokenValidityDuration: tokenValidity,
		newID:                 uuid.NewString,
	}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrInvalidInput, msg)
}

// normalize trims p in place and checks the fields every account needs.
// requirePassword is set on registration; on update an empty password means
// "unchanged".
func normalize(p *Profile, requirePassword bool) error {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.MiddleName = strings.TrimSpace(p.MiddleName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.ContactNumber = strings.TrimSpace(p.ContactNumber)

	switch {
	case p.FirstName == "":
		return invalid("first name is required")
	case p.LastName == "":
		return invalid("last name is required")
	case p.Email == "":
		return invalid("email is required")
	}

	if addr, err := mail.ParseAddress(p.Email); err != nil || addr.Address != p.Email {
		return invalid("email is not valid")
	}

	if p.Password == "" {
		if requirePassword {
			return invalid("password is required")
		}
		return nil
	}
	if len(p.Password) < minPasswordLength {
		return invalid(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(p.Password) > maxPasswordBytes {
		return invalid(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}

func hashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return hash, nil
}

func (s *Service) Register(ctx context.Context, p Profile) (*User, error) {
	if err := normalize(&p, true); err != nil {
		return nil, err
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:            s.newID(),
		FirstName:     p.FirstName,
		MiddleName:    p.MiddleName,
		LastName:      p.LastName,
		Email:         p.Email,
		ContactNumber: p.ContactNumber,
		PasswordHash:  hash,
	}

	created, err := s.repos(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Login checks the credentials and returns a fresh session token. Unknown
// emails and wrong passwords both give common.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repos(s.db).GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return token, user, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repos(s.db).GetByID(ctx, id)
}

// UserIDFromToken resolves a bearer token to the user it was issued to.
func (s *Service) UserIDFromToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// Update replaces the profile of user id in one transaction. The password
// hash changes only when p.Password is non-empty.
func (s *Service) Update(ctx context.Context, id string, p Profile) (*User, error) {
	if err := normalize(&p, false); err != nil {
		return nil, err
	}

	var hash []byte
	if p.Password != "" {
		h, err := hashPassword(p.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	var updated *User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		current.FirstName = p.FirstName
		current.MiddleName = p.MiddleName
		current.LastName = p.LastName
		current.Email = p.Email
		current.ContactNumber = p.ContactNumber
		if hash != nil {
			current.PasswordHash = hash
		}

		updated, err = repo.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
