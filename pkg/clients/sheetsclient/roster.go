package sheetsclient

import (
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// WriteRoster clears the roster tab and writes the given rows starting at
// A1. The first row is expected to be the header.
func (c *Client) WriteRoster(spreadsheetID, tab string, rows [][]interface{}) error {
	clearRange := fmt.Sprintf("%s!A:Z", tab)
	if _, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Do(); err != nil {
		return fmt.Errorf("failed to clear roster tab: %w", err)
	}

	valueRange := &sheets.ValueRange{Values: rows}
	writeRange := fmt.Sprintf("%s!A1", tab)
	_, err := c.service.Spreadsheets.Values.
		Update(spreadsheetID, writeRange, valueRange).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return fmt.Errorf("failed to write roster: %w", err)
	}

	return nil
}
