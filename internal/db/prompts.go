package db

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"
)

type seedRecord struct {
	Line int
	Text string
	Tags []string
}

// SeedOpener opens the seed CSV. It is only called when an import runs.
type SeedOpener func(ctx context.Context) (io.ReadCloser, error)

// SeedPrompts imports the seed CSV when the prompts table is empty and
// returns how many prompts were created. A non-empty table imports nothing.
func SeedPrompts(ctx context.Context, conn *gorm.DB, open SeedOpener, systemUsername string) (int, error) {
	if conn == nil {
		return 0, nil
	}
	empty, err := PromptsEmpty(ctx, conn)
	if err != nil {
		return 0, err
	}
	if !empty {
		return 0, nil
	}
	src, err := open(ctx)
	if err != nil {
		return 0, err
	}
	defer src.Close()
	return ImportPrompts(ctx, conn, src, systemUsername)
}

// PromptsEmpty reports whether no prompt has been stored yet.
func PromptsEmpty(ctx context.Context, conn *gorm.DB) (bool, error) {
	var ids []uint
	if err := conn.WithContext(ctx).Model(&Prompt{}).Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) == 0, nil
}

// ImportPrompts reads rows of (text, tag, tag, ...) and stores each as a
// randomly chooseable prompt owned by the system user, in one transaction.
func ImportPrompts(ctx context.Context, conn *gorm.DB, r io.Reader, systemUsername string) (int, error) {
	records, err := readPrompts(r)
	if err != nil {
		return 0, err
	}
	inserted := 0
	err = conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		system, err := GetOrCreateUser(tx, systemUsername)
		if err != nil {
			return fmt.Errorf("system user: %w", err)
		}
		for _, record := range records {
			if _, err := createPrompt(tx, system, record.Text, record.Tags, true); err != nil {
				return fmt.Errorf("seed line %d: %w", record.Line, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func readPrompts(r io.Reader) ([]seedRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var records []seedRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if len(row) == 0 {
			continue
		}
		text := strings.TrimSpace(row[0])
		if text == "" {
			continue
		}
		var tags []string
		for _, field := range row[1:] {
			if name := strings.TrimSpace(field); name != "" {
				tags = append(tags, name)
			}
		}
		records = append(records, seedRecord{Line: line, Text: text, Tags: tags})
	}
	return records, nil
}
