// Package filter implements the default-deny safety check for dangerous
// YAML tags.
//
// Two composable stages:
//
//   - QuickScan: cheap substring containment over the raw, unparsed text,
//     run before the expensive parse step to fail fast on obviously
//     dangerous input.
//   - DeepScan: exhaustive walk of the parsed tree testing every tag,
//     including tags on mapping keys and tags nested inside other tagged
//     values, against the deny-list.
//
// Matching is substring containment against tag-name fragments rather than
// an allow-list of canonical tags: the intent is to deny by namespace
// family, so new dangerous tag variants sharing a prefix are blocked without
// code changes, at the cost of being overly conservative. Callers that trust
// their input bypass both stages through the unsafe loader entry points.
package filter
