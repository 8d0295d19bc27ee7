// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package prefs stores the chosen visualization per question.

# View Catalogue

Every question type has a default view and a fixed set of allowed views:

	prefs.DefaultView(models.TypeRankOptions)      // "rankedOrder"
	prefs.Allowed(models.TypeRadio, models.ViewIRV) // false

Resolve picks the view for a question: a saved preference, then the
definition's visualization, then the type default. Entries that are not
allowed for the question's type are passed over.

# Storage

SQLStore keeps one row per question in visualization_preference, with
options serialized as JSON text. It works against sqlite and postgres.

	store := prefs.NewSQLStore(db)
	err := store.Save(ctx, "q1", models.Visualization{Type: models.ViewDoughnut})

# Export and Import

Export returns the preferences in the definition-file layout
(questionId -> {visualization}). Import validates each entry against the
survey and writes the valid ones in a single transaction.
*/
package prefs
