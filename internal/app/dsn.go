package app

import (
	"net/url"
	"strings"
)

// traceQueryLimit caps the statement text attached to db spans.
const traceQueryLimit = 512

// postgresDSN returns the dsn handed to lib/pq together with the database
// name used as the span attribute. Pooled connections behind pgbouncer need
// text results, so the binary flag is added unless the url sets it already.
func postgresDSN(raw string, textResults bool) (dsn string, dbName string) {
	dsn = strings.TrimSpace(raw)
	parsed, err := url.Parse(dsn)
	if err != nil || parsed.Scheme == "" {
		return dsn, keywordDBName(dsn)
	}

	if textResults {
		query := parsed.Query()
		if _, ok := query["disable_prepared_binary_result"]; !ok {
			query.Set("disable_prepared_binary_result", "yes")
			parsed.RawQuery = query.Encode()
			dsn = parsed.String()
		}
	}
	return dsn, strings.Trim(parsed.Path, "/ ")
}

// keywordDBName reads dbname from a "host=... dbname=..." style dsn.
func keywordDBName(dsn string) string {
	for _, token := range strings.Fields(dsn) {
		key, value, ok := strings.Cut(token, "=")
		if ok && key == "dbname" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

func traceQuery(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) > traceQueryLimit {
		return compact[:traceQueryLimit] + "..."
	}
	return compact
}
