package naming

import "strings"

const classicStorageProvider = "microsoft.classicstorage/storageaccounts"

// IsClassicStorageAccount reports whether an ARM resource id refers to a
// classic (ASM) storage account rather than a Resource Manager one.
func IsClassicStorageAccount(resourceID string) bool {
	return strings.Contains(strings.ToLower(resourceID), classicStorageProvider)
}
