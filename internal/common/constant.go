package common

// UploadFieldName is the multipart form field carrying the file in an
// upload request. Both the checker and the server agree on this value.
const UploadFieldName = "file"

// UploadPath is the request target accepting multipart uploads.
const UploadPath = "/upload"
