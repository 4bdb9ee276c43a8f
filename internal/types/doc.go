/*
Package types defines the catalog data structures shared by the client,
the activity log and the TUI.

# Entities

Product:
  - Identified by SKU once persisted (ID is zero until then)
  - Tags and materials are plain names, display order follows the server
  - Numeric inventory fields are optional pointers

Category:
  - Numeric ID, assigned by the catalog service
  - SkuInitials is always three letters and prefixes generated SKUs

Tag and Material:
  - Keyed by normalized name
  - UsageCount is informational only

# Payloads

ProductCreate is a full draft sent on create. ProductUpdate is sparse:
every field is a pointer and nil fields are omitted from the JSON body,
so a commit only carries the field that was edited.
*/
package types
