package documents

import (
	"bytes"
	"fmt"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
)

const appointmentsSheet = "Appointments"

var appointmentHeaders = []string{
	"Reference", "Date", "Shift", "Queue", "Doctor", "Patient", "Gender", "Age",
	"Contact", "Source", "Status", "Consultation Fee", "Drug Fee", "Total", "Payment",
}

// AppointmentsWorkbook writes one row per appointment to an xlsx file.
func AppointmentsWorkbook(appts []models.Appointment) ([]byte, error) {
	file := excelize.NewFile()
	file.NewSheet(appointmentsSheet)
	file.DeleteSheet("Sheet1")

	for i, header := range appointmentHeaders {
		file.SetCellValue(appointmentsSheet, cell(i, 1), header)
	}
	for i, appt := range appts {
		appendRow(file, i+2, appt)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendRow(file *excelize.File, row int, appt models.Appointment) {
	values := []interface{}{
		appt.ReferenceNumber,
		appt.Date.Format("2006-01-02"),
		appt.ShiftTime,
		appt.QueueNumber,
		appt.DoctorName,
		appt.PatientName,
		appt.PatientGender,
		appt.PatientAge,
		appt.PatientContact,
		appt.Source,
		appt.Status,
		appt.ConsultationFee,
		appt.DrugFee,
		appt.TotalFee(),
		appt.PaymentStatus,
	}
	for col, v := range values {
		file.SetCellValue(appointmentsSheet, cell(col, row), v)
	}
}

// cell converts a zero-based column and one-based row into an A1 reference.
func cell(col, row int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return fmt.Sprintf("%s%d", name, row)
}
