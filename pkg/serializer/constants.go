package serializer

// StdoutURI is the output path meaning standard output.
const StdoutURI = "-"

// emptyValue is the table cell printed for data with no fields.
const emptyValue = "<empty>"
