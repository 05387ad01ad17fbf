package creator

import "time"

// Limits applied to creator input
const (
	MaxCategories = 5
	MaxBioLength  = 2000
)

// Stat steps recorded per membership so bus retries do not double count
const (
	stepPatronAdded   = "patron_added"
	stepVolumeAdded   = "volume_added"
	stepPatronRemoved = "patron_removed"

	AppliedStepsSize = 10000
	AppliedStepsTTL  = time.Hour
)

// Log messages
const (
	LogMsgCatalogLoaded      = "Category catalog loaded"
	LogMsgCreatorCreated     = "Creator profile created"
	LogMsgPatronAdjustFail   = "Failed to adjust patron count"
	LogMsgVolumeAddFail      = "Failed to add creator volume"
	LogMsgStatsHandlersWired = "Creator stats handlers registered"
)

// Error messages
const (
	ErrMsgCatalogRead    = "failed to read category catalog"
	ErrMsgCatalogParse   = "failed to parse category catalog"
	ErrMsgCatalogEmpty   = "category catalog has no categories"
	ErrMsgCatalogDupName = "duplicate category in catalog"
)
