package steps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// getCellValueFromTable gets a cell value from a table row by column name.
// The first row (table.Rows[0]) is the header.
func getCellValueFromTable(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return strings.TrimSpace(row.Cells[i].Value)
			}
			return ""
		}
	}

	return ""
}

// parseFloatCell parses a numeric cell; an empty cell is zero
func parseFloatCell(table *godog.Table, row *messages.PickleTableRow, columnName string) (float64, error) {
	value := getCellValueFromTable(table, row, columnName)
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", columnName, err)
	}
	return f, nil
}

// parseIntCell parses an integer cell; an empty cell is zero
func parseIntCell(table *godog.Table, row *messages.PickleTableRow, columnName string) (int, error) {
	value := getCellValueFromTable(table, row, columnName)
	if value == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", columnName, err)
	}
	return i, nil
}

// parseRecipe parses "plate:2, cable:3" into ingredients, keeping their order
func parseRecipe(value string) ([]production.Ingredient, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" {
		return nil, nil
	}

	var recipe []production.Ingredient
	for _, part := range strings.Split(value, ",") {
		name, quantity, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("recipe entry %q must be item:quantity", part)
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(quantity), 64)
		if err != nil {
			return nil, fmt.Errorf("recipe entry %q: %w", part, err)
		}
		recipe = append(recipe, production.Ingredient{Item: strings.TrimSpace(name), Quantity: q})
	}
	return recipe, nil
}

// splitList splits "a, b, c" into its trimmed elements
func splitList(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
