package db_test

import (
	"errors"
	"testing"

	"maxclack/internal/db"
	"maxclack/internal/db/dbtest"
)

func TestGetOrCreateTagKeepsOriginalCreator(t *testing.T) {
	conn := dbtest.Open(t)
	ada := mustUser(t, conn, "ada")
	bob := mustUser(t, conn, "bob")

	created, err := db.GetOrCreateTag(conn, "animals", ada)
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	again, err := db.GetOrCreateTag(conn, "animals", bob)
	if err != nil {
		t.Fatalf("lookup tag: %v", err)
	}
	if again.ID != created.ID {
		t.Fatalf("expected same tag, got %d and %d", created.ID, again.ID)
	}
	if again.CreatorID != ada.ID {
		t.Fatalf("expected creator %d to be kept, got %d", ada.ID, again.CreatorID)
	}
	if got := dbtest.Count(t, conn, &db.Tag{}); got != 1 {
		t.Fatalf("expected 1 tag row, got %d", got)
	}
}

func TestGetOrCreateTagsCollapsesRepeats(t *testing.T) {
	conn := dbtest.Open(t)
	ada := mustUser(t, conn, "ada")

	tags, err := db.GetOrCreateTags(conn, []string{"a", "b", "a", " b "}, ada)
	if err != nil {
		t.Fatalf("get or create tags: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "a" || tags[1].Name != "b" {
		t.Fatalf("unexpected tags %#v", tags)
	}
}

func TestGetOrCreateTagRequiresCreator(t *testing.T) {
	conn := dbtest.Open(t)

	if _, err := db.GetOrCreateTag(conn, "orphan", db.User{}); err == nil {
		t.Fatalf("expected missing creator to fail")
	}
	if got := dbtest.Count(t, conn, &db.Tag{}); got != 0 {
		t.Fatalf("expected no tag rows, got %d", got)
	}
}

func TestTagNameUniqueConstraint(t *testing.T) {
	conn := dbtest.Open(t)
	ada := mustUser(t, conn, "ada")

	if err := conn.Create(&db.Tag{Name: "animals", CreatorID: ada.ID}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := conn.Create(&db.Tag{Name: "animals", CreatorID: ada.ID}).Error
	if err == nil {
		t.Fatalf("expected duplicate tag name insert to fail")
	}
	if !db.IsUniqueViolation(err) {
		t.Fatalf("expected duplicate tag name to be classified as a unique violation, got %v", err)
	}
	if db.IsUniqueViolation(errors.New("connection reset")) {
		t.Fatalf("expected unrelated error not to be a unique violation")
	}
	if got := dbtest.Count(t, conn, &db.Tag{}); got != 1 {
		t.Fatalf("expected 1 tag row, got %d", got)
	}
}
