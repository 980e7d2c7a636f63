package document

// HasSelection reports whether a selection anchor is currently registered.
func (d *Document) HasSelection() bool {
	_, ok := d.SelAnchor()
	return ok
}

// SelectedBytes returns a copy of the currently selected text, or nil if
// there is no selection.
func (d *Document) SelectedBytes() []byte {
	lo, hi, ok := d.SelectionRange()
	if !ok {
		return nil
	}
	return d.Bytes(lo, hi)
}

// DeleteSelection removes the selected span, if any, and clears the
// selection. Reports whether a selection existed to delete.
func (d *Document) DeleteSelection() (bool, error) {
	lo, hi, ok := d.SelectionRange()
	if !ok {
		return false, nil
	}
	if err := d.DeleteRange(lo, hi); err != nil {
		return false, err
	}
	d.ClearSelection()
	return true, nil
}
