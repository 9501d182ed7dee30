/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

import (
	"encoding/base64"

	"github.com/zeebo/xxh3"
)

// Fingerprint returns the XXH3-128 digest of the dictionary in the "xxh3:<base64>" form.
// The digest is computed over the serialized text with default options, so dictionaries
// that are Equal have the same fingerprint regardless of the comments and layout they were parsed from.
func Fingerprint(d *Dictionary) string {
	sum := xxh3.HashString128(Serialize(d)).Bytes()
	return "xxh3:" + base64.StdEncoding.EncodeToString(sum[:])
}
