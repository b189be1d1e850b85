// Package admin implements the interactive administrator seeding command.
package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/dmitrijs2005/gophcatalog/internal/shared"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var ErrPasswordMismatch = errors.New("passwords do not match")

// AdminCreator persists a new administrator account.
type AdminCreator interface {
	CreateAdmin(ctx context.Context, username, email, password string) (*models.User, error)
}

// Seeder collects administrator credentials from the environment, falling
// back to prompts on in/out for anything unset.
type Seeder struct {
	creator AdminCreator
	getenv  func(string) string
	reader  *bufio.Reader
	out     io.Writer
}

func NewSeeder(c AdminCreator, getenv func(string) string, in io.Reader, out io.Writer) *Seeder {
	return &Seeder{creator: c, getenv: getenv, reader: bufio.NewReader(in), out: out}
}

// Run gathers credentials and creates the admin.
func (s *Seeder) Run(ctx context.Context) (*models.User, error) {
	username, err := s.value("ADMIN_USERNAME", "Admin username")
	if err != nil {
		return nil, err
	}
	email, err := s.value("ADMIN_EMAIL", "Admin email")
	if err != nil {
		return nil, err
	}
	password, err := s.password()
	if err != nil {
		return nil, err
	}

	user, err := s.creator.CreateAdmin(ctx, username, email, password)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "Admin %q created (id %s)\n", user.Username, user.ID)
	return user, nil
}

func (s *Seeder) value(env, prompt string) (string, error) {
	if v := strings.TrimSpace(s.getenv(env)); v != "" {
		return v, nil
	}
	return GetSimpleText(s.reader, prompt, s.out)
}

func (s *Seeder) password() (string, error) {
	if v := s.getenv("ADMIN_PASSWORD"); v != "" {
		return v, nil
	}

	pw, err := GetPassword(s.out, "Admin password: ")
	if err != nil {
		return "", err
	}
	defer shared.WipeByteArray(pw)

	confirm, err := GetPassword(s.out, "Repeat password: ")
	if err != nil {
		return "", err
	}
	defer shared.WipeByteArray(confirm)

	if string(pw) != string(confirm) {
		return "", ErrPasswordMismatch
	}
	return string(pw), nil
}

// GetSimpleText prints a prompt to w and reads one trimmed line from reader.
// A final line without a newline is accepted.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt and reads a password from the terminal without
// echo.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
