package schema

// CoreGroupTypes lists the core group types an extension may include.
var CoreGroupTypes = []string{
	"NWBContainer",
	"NWBDataInterface",
	"TimeSeries",
	"ProcessingModule",
	"LabMetaData",
	"Device",
	"DynamicTable",
}

// CoreDatasetTypes lists the core dataset types an extension may include.
var CoreDatasetTypes = []string{
	"NWBData",
	"VectorData",
	"VectorIndex",
	"ElementIdentifiers",
	"DynamicTableRegion",
	"Image",
}

// CoreTypes returns the core type names for kind.
func CoreTypes(kind Kind) []string {
	switch kind {
	case KindGroup:
		return append([]string(nil), CoreGroupTypes...)
	case KindDataset:
		return append([]string(nil), CoreDatasetTypes...)
	}
	return nil
}

// IsCore reports whether name is a core type of kind.
func IsCore(kind Kind, name string) bool {
	for _, n := range CoreTypes(kind) {
		if n == name {
			return true
		}
	}
	return false
}
