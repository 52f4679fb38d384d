// services/normalizer.go
package services

import (
	"github.com/yataco/dashboard/backend/config"
	"github.com/yataco/dashboard/backend/models"
	"github.com/yataco/dashboard/backend/utils"
)

// CleanHeader trims whitespace (and a stray BOM) from every column name.
func CleanHeader(header []string) []string {
	cleaned := make([]string, len(header))
	for i, name := range header {
		cleaned[i] = utils.CleanColumnName(name)
	}
	return cleaned
}

// aliasesFor returns the ordered candidate list for one logical field.
func aliasesFor(aliases config.ColumnAliases, field models.LogicalField) []string {
	switch field {
	case models.FieldSite:
		return aliases.Site
	case models.FieldPeriod:
		return aliases.Period
	case models.FieldShift:
		return aliases.Shift
	case models.FieldCapacity:
		return aliases.Capacity
	case models.FieldStudents:
		return aliases.Students
	case models.FieldStartDate:
		return aliases.StartDate
	case models.FieldSubject:
		return aliases.Subject
	}
	return nil
}

// ResolveColumns maps each logical field to the first alias present in header.
// Exact matches are tried for every alias before case/accent-insensitive ones,
// so "Cupo máximo" still beats a later "cupo". A raw column is claimed by at
// most one field. Unmatched fields are simply left out of the mapping.
func ResolveColumns(header []string, aliases config.ColumnAliases) models.ColumnMapping {
	header = CleanHeader(header)
	exact := make(map[string]string, len(header))
	folded := make(map[string]string, len(header))
	for _, name := range header {
		if _, ok := exact[name]; !ok {
			exact[name] = name
		}
		key := utils.FoldText(name) // "PERÍODO" -> "periodo"
		if _, ok := folded[key]; !ok {
			folded[key] = name
		}
	}

	mapping := models.ColumnMapping{}
	claimed := map[string]bool{}
	for _, field := range models.LogicalFields {
		candidates := aliasesFor(aliases, field)
		if col, ok := firstMatch(candidates, exact, claimed, false); ok {
			mapping[field] = col
			claimed[col] = true
			continue
		}
		// No exact hit, try again ignoring case and accents.
		if col, ok := firstMatch(candidates, folded, claimed, true); ok {
			mapping[field] = col
			claimed[col] = true
		}
	}

	utils.Log.Debugf("Normalizer: resolved %d of %d logical columns: %v", len(mapping), len(models.LogicalFields), mapping)
	return mapping
}

func firstMatch(candidates []string, index map[string]string, claimed map[string]bool, fold bool) (string, bool) {
	for _, alias := range candidates {
		key := utils.CleanColumnName(alias)
		if fold {
			key = utils.FoldText(alias)
		}
		if col, ok := index[key]; ok && !claimed[col] {
			return col, true
		}
	}
	return "", false
}
