// One-off catalog importer: go run scripts/seedbooks.go books.csv
//
// Reads a CSV with header isbn,title,author,year and upserts the rows
// into the books table. DATABASE_URL must be set.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: seedbooks <books.csv>")
		os.Exit(2)
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set")
		os.Exit(2)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	r := csv.NewReader(f)
	// header: isbn,title,author,year
	if _, err := r.Read(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	n := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		year, err := strconv.Atoi(rec[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: bad year %q\n", rec[0], rec[3])
			continue
		}
		_, err = conn.Exec(ctx,
			`INSERT INTO books (isbn, title, author, year) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (isbn) DO NOTHING`,
			rec[0], rec[1], rec[2], year)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		n++
	}
	fmt.Printf("imported %d books\n", n)
}
