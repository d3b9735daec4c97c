package reporters

// DefaultRegistry returns a registry preloaded with a small built-in set of
// federal reporters, enough to extract the most common citations without an
// external database file. Real deployments load a full database with
// LoadDirectory.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, cfg := range defaultReporters {
		// The built-in table is static; a registration failure here is a
		// programming error, not a runtime condition.
		if err := r.Register(cfg); err != nil {
			panic("built-in reporters table is invalid: " + err.Error())
		}
	}
	return r
}

var defaultReporters = []ReporterConfig{
	{
		ShortName: "U.S.",
		Name:      "United States Supreme Court Reports",
		CiteType:  "federal",
		Editions: []EditionConfig{
			{ShortName: "U.S.", Start: "1790"},
		},
		Variations: map[string]string{
			"U. S.": "U.S.",
			"US":    "U.S.",
		},
	},
	{
		ShortName: "S. Ct.",
		Name:      "West's Supreme Court Reporter",
		CiteType:  "federal:scotus",
		Editions: []EditionConfig{
			{ShortName: "S. Ct.", Start: "1882"},
		},
		Variations: map[string]string{
			"S.Ct.":    "S. Ct.",
			"Sup. Ct.": "S. Ct.",
		},
	},
	{
		ShortName: "L. Ed.",
		Name:      "Lawyers' Edition, United States Supreme Court Reports",
		CiteType:  "federal:scotus",
		Editions: []EditionConfig{
			{ShortName: "L. Ed.", Start: "1790", End: "1956"},
			{ShortName: "L. Ed. 2d", Start: "1956"},
		},
		Variations: map[string]string{
			"L.Ed.":    "L. Ed.",
			"L.Ed.2d":  "L. Ed. 2d",
			"L. Ed.2d": "L. Ed. 2d",
		},
	},
	{
		ShortName: "F.",
		Name:      "Federal Reporter",
		CiteType:  "federal",
		Editions: []EditionConfig{
			{ShortName: "F.", Start: "1880", End: "1924"},
			{ShortName: "F.2d", Start: "1924", End: "1993"},
			{ShortName: "F.3d", Start: "1993"},
		},
		Variations: map[string]string{
			"F. 2d": "F.2d",
			"F. 3d": "F.3d",
			"Fed.":  "F.",
		},
	},
	{
		ShortName: "F. Supp.",
		Name:      "Federal Supplement",
		CiteType:  "federal",
		Editions: []EditionConfig{
			{ShortName: "F. Supp.", Start: "1932", End: "1998"},
			{ShortName: "F. Supp. 2d", Start: "1998", End: "2014"},
			{ShortName: "F. Supp. 3d", Start: "2014"},
		},
		Variations: map[string]string{
			"F.Supp.":   "F. Supp.",
			"F.Supp.2d": "F. Supp. 2d",
			"F.Supp.3d": "F. Supp. 3d",
		},
	},
}
