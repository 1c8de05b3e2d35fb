// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/pterm/pterm"
	"golang.org/x/text/encoding/charmap"
)

// displayName makes a stored name printable. Names that are not UTF-8 are
// taken to be Windows-1252, which covers the editors that write them.
func displayName(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	if d, err := charmap.Windows1252.NewDecoder().String(s); err == nil {
		return d
	}
	return strconv.Quote(s)
}

func renderTable(out io.Writer, header []string, rows [][]string) error {
	data := append([][]string{header}, rows...)
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	_, err = fmt.Fprintln(out, s)
	return err
}

func itoa[T ~int | ~int8 | ~int16 | ~uint8 | ~uint16 | ~uint32](v T) string {
	return strconv.Itoa(int(v))
}
