package common

// MaxRequestBody limits JSON request bodies for review/store endpoints.
const MaxRequestBody = 1 << 20
