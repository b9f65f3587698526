package consts

// MaxHierarchyDepth caps nesting of same-type resources. A root resource has
// level 0, so the deepest allowed level is MaxHierarchyDepth-1.
const MaxHierarchyDepth = 50
