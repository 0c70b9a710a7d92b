// Command import_users_csv creates accounts from a CSV file with the header
// name,email,password. Existing accounts with the same password are kept.
//
//	go run ./scripts users.csv
package main

import (
	"TeamChat/config"
	"TeamChat/repositories/impl"
	"TeamChat/services"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type userRow struct {
	Line     int
	Name     string
	Email    string
	Password string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment variables")
	}

	path := "users.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatal("open csv", "path", path, "err", err)
	}
	defer file.Close()

	rows, err := parseUsersCSV(file)
	if err != nil {
		log.Fatal("parse csv", "path", path, "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal("database", "err", err)
	}

	auth := services.NewAuthService(impl.NewUserRepository(db), services.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL))
	imported, skipped := importUsers(context.Background(), auth, rows)
	log.Info("import finished", "imported", imported, "skipped", skipped)
}

type signUpper interface {
	SignUp(ctx context.Context, input services.SignUpInput) (services.AuthResult, error)
}

func importUsers(ctx context.Context, auth signUpper, rows []userRow) (imported, skipped int) {
	for _, row := range rows {
		_, err := auth.SignUp(ctx, services.SignUpInput{Name: row.Name, Email: row.Email, Password: row.Password})
		if err != nil {
			log.Warn("skipping row", "line", row.Line, "email", row.Email, "err", err)
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped
}

// parseUsersCSV reads the header to locate the columns, so their order is free.
func parseUsersCSV(r io.Reader) ([]userRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{"name", "email", "password"} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []userRow
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		rows = append(rows, userRow{
			Line:     line,
			Name:     strings.TrimSpace(record[index["name"]]),
			Email:    strings.TrimSpace(record[index["email"]]),
			Password: record[index["password"]],
		})
	}
	return rows, nil
}
