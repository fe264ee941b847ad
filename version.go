package guidelinematcher

// Version is the library version, following semantic versioning.
const Version = "0.3.0"

// SchemaVersion is the guideline document schema version this library writes.
// The engine does not currently branch on a document's declared schemaVersion;
// it is advisory metadata for authoring tools.
const SchemaVersion = "1"
