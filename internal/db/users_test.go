package db_test

import (
	"errors"
	"strings"
	"testing"

	"maxclack/internal/db"
	"maxclack/internal/db/dbtest"

	"gorm.io/gorm"
)

func TestGetOrCreateUserReturnsExisting(t *testing.T) {
	conn := dbtest.Open(t)

	first, err := db.GetOrCreateUser(conn, "ada")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	second, err := db.GetOrCreateUser(conn, " ada ")
	if err != nil {
		t.Fatalf("lookup user: %v", err)
	}
	if first.ID == 0 || first.ID != second.ID {
		t.Fatalf("expected same user, got %d and %d", first.ID, second.ID)
	}
	if got := dbtest.Count(t, conn, &db.User{}); got != 1 {
		t.Fatalf("expected 1 user row, got %d", got)
	}
}

func TestGetOrCreateUserInsideTransaction(t *testing.T) {
	conn := dbtest.Open(t)

	err := conn.Transaction(func(tx *gorm.DB) error {
		a, err := db.GetOrCreateUser(tx, "grace")
		if err != nil {
			return err
		}
		b, err := db.GetOrCreateUser(tx, "grace")
		if err != nil {
			return err
		}
		if a.ID != b.ID {
			t.Errorf("expected same user within one transaction, got %d and %d", a.ID, b.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if got := dbtest.Count(t, conn, &db.User{}); got != 1 {
		t.Fatalf("expected 1 user row, got %d", got)
	}
}

func TestUsernameUniqueConstraint(t *testing.T) {
	conn := dbtest.Open(t)

	if err := conn.Create(&db.User{Username: "ada"}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := conn.Create(&db.User{Username: "ada"}).Error; err == nil {
		t.Fatalf("expected duplicate username insert to fail")
	}
}

func TestGetOrCreateUserRejectsBadNames(t *testing.T) {
	conn := dbtest.Open(t)

	for _, name := range []string{"", "   ", strings.Repeat("x", 21)} {
		if _, err := db.GetOrCreateUser(conn, name); !errors.Is(err, db.ErrInvalidName) {
			t.Fatalf("expected invalid name for %q, got %v", name, err)
		}
	}
	if _, err := db.GetOrCreateUser(conn, strings.Repeat("é", 20)); err != nil {
		t.Fatalf("expected 20 characters to be accepted, got %v", err)
	}
}

func TestFindUserUnknown(t *testing.T) {
	conn := dbtest.Open(t)

	if _, err := db.FindUser(conn, "nobody"); !errors.Is(err, db.ErrUnknownUser) {
		t.Fatalf("expected unknown user, got %v", err)
	}
	if got := dbtest.Count(t, conn, &db.User{}); got != 0 {
		t.Fatalf("expected lookup not to create users, got %d", got)
	}
}
