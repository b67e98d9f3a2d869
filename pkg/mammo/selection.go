package mammo

import "strings"

// Selection maps each canonical view to its chosen record, nil when no
// candidate qualified
type Selection map[CanonicalView]*Record

// Coverage counts the views with a selected record
func (s Selection) Coverage() int {
	n := 0
	for _, rec := range s {
		if rec != nil {
			n++
		}
	}
	return n
}

// rankScore sums the technique ranks of all selected records
func (s Selection) rankScore(order PreferenceOrder) int {
	score := 0
	for _, rec := range s {
		if rec != nil {
			score += order.Rank(rec.Metadata.Technique)
		}
	}
	return score
}

// FilterConfig controls which records may participate in selection
type FilterConfig struct {
	// AllowedTechniques whitelists techniques; empty allows all
	AllowedTechniques []Technique `yaml:"allowed_techniques"`

	ExcludeImplants         bool `yaml:"exclude_implants"`
	ExcludeNonStandardViews bool `yaml:"exclude_non_standard_views"`
	ExcludeForProcessing    bool `yaml:"exclude_for_processing"`
	ExcludeSecondaryCapture bool `yaml:"exclude_secondary_capture"`
	ExcludeNonMGModality    bool `yaml:"exclude_non_mg_modality"`

	RequireCommonTechniqueGroup bool `yaml:"require_common_technique_group"`
}

// DefaultFilterConfig excludes the image categories that are never
// useful for screening inference
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		ExcludeForProcessing:    true,
		ExcludeSecondaryCapture: true,
		ExcludeNonMGModality:    true,
	}
}

// PermissiveFilterConfig disables every filter
func PermissiveFilterConfig() FilterConfig {
	return FilterConfig{}
}

func (c FilterConfig) allows(rec *Record) bool {
	if len(c.AllowedTechniques) > 0 {
		found := false
		for _, t := range c.AllowedTechniques {
			if rec.Metadata.Technique == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.ExcludeImplants && rec.Metadata.HasImplant {
		return false
	}
	if c.ExcludeNonStandardViews && !rec.Metadata.IsStandardView() {
		return false
	}
	if c.ExcludeForProcessing && rec.Metadata.ForProcessing {
		return false
	}
	if c.ExcludeSecondaryCapture && rec.Metadata.SecondaryCapture {
		return false
	}
	if c.ExcludeNonMGModality {
		if rec.Metadata.Modality == "" {
			return false
		}
		if strings.ToUpper(rec.Metadata.Modality) != MammographyModality {
			return false
		}
	}
	return true
}

// ApplyFilters returns the records that pass every enabled rule
func ApplyFilters(records []*Record, config FilterConfig) []*Record {
	out := make([]*Record, 0, len(records))
	for _, rec := range records {
		if config.allows(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// PreferredViews selects the best record for each canonical view using
// the default preference order
func PreferredViews(records []*Record) Selection {
	return PreferredViewsWithOrder(records, OrderDefault)
}

// PreferredViewsWithOrder selects the best record for each canonical
// view under a specific preference order. Among equally preferred
// candidates the earliest in input order wins, keeping the result
// deterministic for a given record slice.
func PreferredViewsWithOrder(records []*Record, order PreferenceOrder) Selection {
	selection := make(Selection, 4)
	for _, view := range CanonicalViews() {
		var best *Record
		for _, rec := range records {
			if !view.Matches(rec) {
				continue
			}
			if best == nil || rec.IsPreferredTo(best, order) {
				best = rec
			}
		}
		selection[view] = best
	}
	return selection
}

// PreferredViewsFiltered filters the records, selects the best per view,
// and optionally enforces a common technique group across the result
func PreferredViewsFiltered(records []*Record, config FilterConfig, order PreferenceOrder) Selection {
	filtered := ApplyFilters(records, config)
	selection := PreferredViewsWithOrder(filtered, order)
	if config.RequireCommonTechniqueGroup {
		return enforceCommonTechniqueGroup(filtered, selection, order)
	}
	return selection
}

// enforceCommonTechniqueGroup repairs a selection that mixes 2D and 3D
// techniques by re-running selection on single-group record pools and
// keeping whichever pool covers more views
func enforceCommonTechniqueGroup(records []*Record, initial Selection, order PreferenceOrder) Selection {
	if isSingleGroup(initial) {
		return initial
	}

	var pool2D, pool3D []*Record
	for _, rec := range records {
		switch {
		case is2DGroup(rec.Metadata.Technique):
			pool2D = append(pool2D, rec)
		case is3DGroup(rec.Metadata.Technique):
			pool3D = append(pool3D, rec)
		}
	}

	sel2D := PreferredViewsWithOrder(pool2D, order)
	sel3D := PreferredViewsWithOrder(pool3D, order)

	cov2D := sel2D.Coverage()
	cov3D := sel3D.Coverage()
	switch {
	case cov2D > cov3D:
		return sel2D
	case cov3D > cov2D:
		return sel3D
	}

	// equal coverage: lower total rank score wins, 2D on an exact tie
	if sel3D.rankScore(order) < sel2D.rankScore(order) {
		return sel3D
	}
	return sel2D
}

// is2DGroup covers the single-projection techniques
func is2DGroup(t Technique) bool {
	switch t {
	case TechniqueFullFieldDigital, TechniqueSynthetic2D, TechniqueFilmScreen:
		return true
	}
	return false
}

// is3DGroup covers the volume techniques
func is3DGroup(t Technique) bool {
	return t == TechniqueTomosynthesis
}

// isSingleGroup reports whether every selected record belongs to one
// technique group. Unknown techniques belong to neither group and force
// a recomputation.
func isSingleGroup(s Selection) bool {
	has2D, has3D := false, false
	for _, rec := range s {
		if rec == nil {
			continue
		}
		switch {
		case is2DGroup(rec.Metadata.Technique):
			has2D = true
		case is3DGroup(rec.Metadata.Technique):
			has3D = true
		default:
			return false
		}
	}
	return !(has2D && has3D)
}
