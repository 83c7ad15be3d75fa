// internal/domain/models/resourcetypes.go
package models

// Canonical resource type identifiers.
//
// These values are stored in the database in the Resource.Type field and
// are used throughout the application as stable keys.
const (
	ResourceTypeDocument     = "document" // generic catch-all; default
	ResourceTypeFolder       = "folder"
	ResourceTypeImage        = "image"
	ResourceTypeVideo        = "video"
	ResourceTypeAudio        = "audio"
	ResourceTypeDataset      = "dataset"
	ResourceTypeLink         = "link"
	ResourceTypePresentation = "presentation"
	ResourceTypeSpreadsheet  = "spreadsheet"
)

// ResourceTypes is the full set of allowed resource type identifiers.
//
// This slice should be treated as the single source of truth for
// validation. Any new type must be added here to be considered valid.
var ResourceTypes = []string{
	ResourceTypeDocument,
	ResourceTypeFolder,
	ResourceTypeImage,
	ResourceTypeVideo,
	ResourceTypeAudio,
	ResourceTypeDataset,
	ResourceTypeLink,
	ResourceTypePresentation,
	ResourceTypeSpreadsheet,
}

// DefaultResourceType is used when no specific type is provided.
const DefaultResourceType = ResourceTypeDocument

// IsValidResourceType reports whether t is one of the allowed resource
// type identifiers.
func IsValidResourceType(t string) bool {
	for _, v := range ResourceTypes {
		if v == t {
			return true
		}
	}
	return false
}
