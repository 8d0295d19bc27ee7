// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Tally API.

# Handler Types

Each handler is a struct holding its dependencies:

  - SurveyHandler: survey definition and respondent list
  - ResultsHandler: aggregated results, whole survey or one question
  - PreferencesHandler: saved visualization choices

Handlers are created via constructor functions:

	surveyHandler := handlers.NewSurveyHandler(src)
	resultsHandler := handlers.NewResultsHandler(src, builder)
	prefsHandler := handlers.NewPreferencesHandler(store, src, cfg)

Every request loads the current survey.Snapshot from the source, so edits
to the definition or results files show up without a restart.

# Results

	GET /results?dateRange=week&filter.role=dev&filter.tools=go,sql
	GET /results/{questionId}?view=irv

dateRange is one of all, today, week, month, quarter. Each filter.<qid>
parameter keeps responses whose answer to qid matches any listed value;
values may be repeated or comma separated. Unknown question IDs and date
ranges are rejected with 400.

# Preferences

	GET    /preferences
	GET    /preferences/export?format=yaml
	PUT    /preferences/{questionId}
	DELETE /preferences/{questionId}
	DELETE /preferences
	POST   /preferences/import

Write operations require the X-Admin-Key header, checked against the
loaded survey's ID. Import accepts the export layout as JSON, or YAML when
the request has a YAML content type.
*/
package handlers
