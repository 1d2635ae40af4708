package parity

// BuildMatrix runs the full pipeline: strip comments from the options.c
// source, recover the declaration table and module-scalar defaults, scan the
// help transcript, and classify every declared entry in source order.
func BuildMatrix(optionsSource, helpText string) ([]OptionRecord, error) {
	src := StripComments(optionsSource)

	entries, err := ScanTable(src)
	if err != nil {
		return nil, err
	}

	return Classify(entries, ScanDefaults(src), ScanHelp(helpText)), nil
}
