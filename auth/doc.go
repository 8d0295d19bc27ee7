// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin key that guards preference writes.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(surveyID, salt)
	err := auth.ValidateAdminKey(surveyID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same survey ID and salt always produce the same key. This allows
validation without storing the key in the database. Operators obtain it with

	quickly-tally -print-admin-key

and send it in the X-Admin-Key header.

Reading results needs no key.
*/
package auth
