package csv

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

// Loader handles loading scheduling data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// tag lists inside a cell are pipe-separated, e.g. "milling|deburring"
const tagSeparator = "|"

// LoadWorkCenters loads work centers from a CSV file with header
// id,name,capacity_hours_per_day,is_active,skills
func (l *Loader) LoadWorkCenters(filename string) ([]*entities.WorkCenter, error) {
	records, err := readAll(filename, []string{"id", "name", "capacity_hours_per_day", "is_active", "skills"})
	if err != nil {
		return nil, errors.Wrap(err, "work centers CSV")
	}

	var workCenters []*entities.WorkCenter
	for i, record := range records {
		capacity, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, errors.Wrapf(err, "work centers CSV row %d: capacity", i+2)
		}
		isActive, err := strconv.ParseBool(record[3])
		if err != nil {
			return nil, errors.Wrapf(err, "work centers CSV row %d: is_active", i+2)
		}
		wc, err := entities.NewWorkCenter(
			entities.WorkCenterID(record[0]), record[1], capacity, isActive, splitTags(record[4]))
		if err != nil {
			return nil, errors.Wrapf(err, "work centers CSV row %d", i+2)
		}
		workCenters = append(workCenters, wc)
	}
	return workCenters, nil
}

// LoadBookings loads committed bookings from a CSV file with header
// work_center_id,job_id,operation_id,start,end (RFC 3339 timestamps)
func (l *Loader) LoadBookings(filename string) ([]entities.Booking, error) {
	records, err := readAll(filename, []string{"work_center_id", "job_id", "operation_id", "start", "end"})
	if err != nil {
		return nil, errors.Wrap(err, "bookings CSV")
	}

	var bookings []entities.Booking
	for i, record := range records {
		start, err := time.Parse(time.RFC3339, record[3])
		if err != nil {
			return nil, errors.Wrapf(err, "bookings CSV row %d: start", i+2)
		}
		end, err := time.Parse(time.RFC3339, record[4])
		if err != nil {
			return nil, errors.Wrapf(err, "bookings CSV row %d: end", i+2)
		}
		interval, err := entities.NewInterval(start, end)
		if err != nil {
			return nil, errors.Wrapf(err, "bookings CSV row %d", i+2)
		}
		bookings = append(bookings, entities.Booking{
			WorkCenterID: entities.WorkCenterID(record[0]),
			JobID:        record[1],
			OperationID:  record[2],
			Interval:     interval,
		})
	}
	return bookings, nil
}

// LoadOperations loads a job's operations from a CSV file with header
// id,name,sequence_order,estimated_duration_minutes,preferred_work_center_id,skill_requirements
func (l *Loader) LoadOperations(filename string) ([]entities.Operation, error) {
	records, err := readAll(filename, []string{
		"id", "name", "sequence_order", "estimated_duration_minutes",
		"preferred_work_center_id", "skill_requirements"})
	if err != nil {
		return nil, errors.Wrap(err, "operations CSV")
	}

	var operations []entities.Operation
	for i, record := range records {
		seq, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, errors.Wrapf(err, "operations CSV row %d: sequence_order", i+2)
		}
		duration, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, errors.Wrapf(err, "operations CSV row %d: duration", i+2)
		}
		op, err := entities.NewOperation(record[0], record[1], seq, duration)
		if err != nil {
			return nil, errors.Wrapf(err, "operations CSV row %d", i+2)
		}
		op.PreferredWorkCenterID = entities.WorkCenterID(record[4])
		op.SkillRequirements = splitTags(record[5])
		operations = append(operations, *op)
	}
	return operations, nil
}

// LoadLineItems loads quote line items from a CSV file with header
// id,description,quantity,minutes_per_unit (minutes_per_unit may be empty)
func (l *Loader) LoadLineItems(filename string) ([]entities.LineItem, error) {
	records, err := readAll(filename, []string{"id", "description", "quantity", "minutes_per_unit"})
	if err != nil {
		return nil, errors.Wrap(err, "line items CSV")
	}

	var lineItems []entities.LineItem
	for i, record := range records {
		quantity, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, errors.Wrapf(err, "line items CSV row %d: quantity", i+2)
		}
		item := entities.LineItem{ID: record[0], Description: record[1], Quantity: quantity}
		if record[3] != "" {
			perUnit, err := decimal.NewFromString(record[3])
			if err != nil {
				return nil, errors.Wrapf(err, "line items CSV row %d: minutes_per_unit", i+2)
			}
			item.MinutesPerUnit = perUnit
		}
		lineItems = append(lineItems, item)
	}
	return lineItems, nil
}

// WriteOperations writes operations in the LoadOperations format
func (l *Loader) WriteOperations(filename string, operations []entities.Operation) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create operations file %s", filename)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"id", "name", "sequence_order", "estimated_duration_minutes",
		"preferred_work_center_id", "skill_requirements"}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "failed to write operations header")
	}
	for _, op := range operations {
		record := []string{
			op.ID,
			op.Name,
			strconv.Itoa(op.SequenceOrder),
			strconv.Itoa(op.EstimatedDuration),
			string(op.PreferredWorkCenterID),
			strings.Join(op.SkillRequirements, tagSeparator),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write operation %s", op.ID)
		}
	}
	return nil
}

func readAll(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", filename)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read")
	}
	if len(records) < 2 {
		return nil, errors.New("must have a header and at least one data row")
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, errors.Newf("header mismatch: expected %v, got %v", expectedHeader, records[0])
	}
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, errors.Newf("row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, column := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != column {
			return false
		}
	}
	return true
}

func splitTags(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, tagSeparator)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
