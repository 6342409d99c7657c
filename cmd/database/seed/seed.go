// Package seed loads reference data from CSV files.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"foodgram/entities"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/tag"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Result counts what an import did.
type Result struct {
	Created int
	Skipped int
}

// ImportIngredients reads "name,measurement_unit" rows and creates the ones
// that do not exist yet.
func ImportIngredients(ctx context.Context, r io.Reader, repo ingredient.IngredientRepository) (Result, error) {
	var res Result
	err := eachRow(r, 2, func(line int, row []string) error {
		name, unit := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		if name == "" || unit == "" {
			return fmt.Errorf("line %d: name and measurement unit are required", line)
		}

		created, err := repo.FirstOrCreateIngredient(ctx, &entities.Ingredient{
			ID:              uuid.New(),
			Name:            name,
			MeasurementUnit: unit,
		})
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		res.count(created)
		return nil
	})
	if err != nil {
		return res, err
	}

	log.Infof("Imported ingredients: %d created, %d already present", res.Created, res.Skipped)
	return res, nil
}

// ImportTags reads "name,color,slug" rows and creates the ones whose slug is new.
func ImportTags(ctx context.Context, r io.Reader, repo tag.TagRepository) (Result, error) {
	var res Result
	err := eachRow(r, 3, func(line int, row []string) error {
		name, color, slug := strings.TrimSpace(row[0]), strings.TrimSpace(row[1]), strings.TrimSpace(row[2])
		if name == "" || slug == "" {
			return fmt.Errorf("line %d: name and slug are required", line)
		}
		if color != "" && !colorPattern.MatchString(color) {
			return fmt.Errorf("line %d: color %q is not #RRGGBB", line, color)
		}

		created, err := repo.FirstOrCreateTag(ctx, &entities.Tag{
			ID:    uuid.New(),
			Name:  name,
			Color: strings.ToUpper(color),
			Slug:  slug,
		})
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		res.count(created)
		return nil
	})
	if err != nil {
		return res, err
	}

	log.Infof("Imported tags: %d created, %d already present", res.Created, res.Skipped)
	return res, nil
}

func (r *Result) count(created bool) {
	if created {
		r.Created++
	} else {
		r.Skipped++
	}
}

// eachRow calls fn for every record with at least columns fields, passing the
// record's line number in the input. Blank lines are skipped.
func eachRow(r io.Reader, columns int, fn func(line int, row []string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line, _ := reader.FieldPos(0)
		if len(row) < columns {
			return fmt.Errorf("line %d: expected %d columns, got %d", line, columns, len(row))
		}
		if err := fn(line, row); err != nil {
			return err
		}
	}
}
