package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// Yesterday retorna o dia anterior no fuso configurado como offset de horas
// em relação ao UTC (ex.: 7 para GMT+7), truncado para meia-noite.
func Yesterday(now time.Time, utcOffsetHours int) time.Time {
	local := now.UTC().Add(time.Duration(utcOffsetHours) * time.Hour)
	y := local.AddDate(0, 0, -1)
	return time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange retorna todas as datas do intervalo fechado [start, end],
// em ordem ascendente. Retorna vazio quando end < start.
func DateRange(start, end time.Time) []time.Time {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	var dates []time.Time
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		dates = append(dates, current)
	}

	return dates
}
