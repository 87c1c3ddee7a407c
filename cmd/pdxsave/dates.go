package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// gameDate is an in-game calendar date. Save dates use the "YYYY.M.D"
// form with single-digit months and days.
type gameDate struct {
	Year, Month, Day int
}

func parseGameDate(s string) (gameDate, error) {
	parts := strings.Split(strings.Trim(s, `"`), ".")
	if len(parts) != 3 {
		return gameDate{}, fmt.Errorf("malformed date %q", s)
	}
	var d gameDate
	var err error
	if d.Year, err = strconv.Atoi(parts[0]); err != nil {
		return gameDate{}, fmt.Errorf("malformed date %q", s)
	}
	if d.Month, err = strconv.Atoi(parts[1]); err != nil {
		return gameDate{}, fmt.Errorf("malformed date %q", s)
	}
	if d.Day, err = strconv.Atoi(parts[2]); err != nil {
		return gameDate{}, fmt.Errorf("malformed date %q", s)
	}
	return d, nil
}

func (d gameDate) String() string {
	return fmt.Sprintf("%d.%d.%d", d.Year, d.Month, d.Day)
}

func (d gameDate) Less(other gameDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// fileDate extracts the date encoded in an archived save filename
// (for example "1850.6.15.txt"). Unparseable names sort first so they
// stay visible instead of disappearing into the middle of a run.
func fileDate(path string) gameDate {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	d, err := parseGameDate(stem)
	if err != nil {
		return gameDate{}
	}
	return d
}
