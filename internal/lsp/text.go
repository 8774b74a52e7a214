package lsp

// applyChanges applies editor edits in order. A change without a range
// replaces the whole text.
func applyChanges(text string, changes []contentChange) string {
	for _, c := range changes {
		if c.Range == nil {
			text = c.Text
			continue
		}
		start := offsetInText(text, c.Range.Start)
		end := max(offsetInText(text, c.Range.End), start)
		text = text[:start] + c.Text + text[end:]
	}
	return text
}
