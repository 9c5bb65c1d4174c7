// Package core contains the canonical payments domain model: dynamic records
// materialized from API responses, change tracking, the dirty-field
// serializer, and the contracts lower-level adapters implement. Adapters must
// depend on this package; core must not depend on transport-specific or
// resource-specific packages.
package core
