// Package format renders display identifiers for printed documents.
package format

import (
	"fmt"
	"strings"
)

var prefixes = map[string]string{
	"FACTURA": "FAC",
	"COTACAO": "COT",
	"COTAÇÃO": "COT",
	"VD":      "VD",
	"RECIBO":  "REC",
}

// DocumentCode maps a document type and numeric id to a display code such as
// "FAC-003". Unknown types fall back to their first three letters uppercased.
// Ids are zero-padded to at least three digits and never truncated.
func DocumentCode(docType string, id int64) string {
	prefix, ok := prefixes[docType]
	if !ok {
		r := []rune(docType)
		if len(r) > 3 {
			r = r[:3]
		}
		prefix = strings.ToUpper(string(r))
	}
	return fmt.Sprintf("%s-%03d", prefix, id)
}
