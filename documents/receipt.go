// Package documents renders appointment receipts and spreadsheet exports.
package documents

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/barcode"
)

// QRContent is what the booking QR code encodes.
type QRContent struct {
	Reference   string `json:"reference"`
	QueueNumber int    `json:"queueNumber"`
	Date        string `json:"date"`
	ShiftTime   string `json:"shiftTime"`
	Doctor      string `json:"doctor"`
	Clinic      string `json:"clinic"`
	Patient     string `json:"patient"`
}

func QRPayload(appt models.Appointment) string {
	payload, _ := json.Marshal(QRContent{
		Reference:   appt.ReferenceNumber,
		QueueNumber: appt.QueueNumber,
		Date:        appt.Date.Format("2006-01-02"),
		ShiftTime:   appt.ShiftTime,
		Doctor:      appt.DoctorName,
		Clinic:      appt.ClinicName,
		Patient:     appt.PatientName,
	})
	return string(payload)
}

// Receipt renders the A5 booking receipt with the QR code on it.
func Receipt(appt models.Appointment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(20, 90, 160)
	pdf.CellFormat(0, 10, appt.ClinicName, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, "Appointment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 12, fmt.Sprintf("Queue No. %d", appt.QueueNumber), "1", 1, "C", false, 0, "")
	pdf.Ln(2)

	addDetail(pdf, "Reference", appt.ReferenceNumber)
	addDetail(pdf, "Patient", appt.PatientName)
	addDetail(pdf, "Gender / Age", fmt.Sprintf("%s / %d", appt.PatientGender, appt.PatientAge))
	addDetail(pdf, "Contact", appt.PatientContact)
	addDetail(pdf, "Doctor", "Dr. "+appt.DoctorName)
	addDetail(pdf, "Date", appt.Date.Format("02 Jan 2006"))
	addDetail(pdf, "Shift", appt.ShiftTime)
	addDetail(pdf, "Status", appt.Status)
	addDetail(pdf, "Consultation Fee", fmt.Sprintf("%.2f", appt.ConsultationFee))
	if appt.DrugFee > 0 {
		addDetail(pdf, "Drug Fee", fmt.Sprintf("%.2f", appt.DrugFee))
	}
	addDetail(pdf, "Payment", appt.PaymentStatus)

	key := barcode.RegisterQR(pdf, QRPayload(appt), qr.M, qr.Auto)
	size := 40.0
	pageWidth, _ := pdf.GetPageSize()
	barcode.Barcode(pdf, key, (pageWidth-size)/2, pdf.GetY()+4, size, size, false)
	pdf.SetY(pdf.GetY() + size + 6)

	pdf.SetFont("Arial", "I", 8)
	pdf.MultiCell(0, 4, "Show this receipt at the reception desk. Please arrive before your shift starts.", "", "C", false)

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addDetail(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 8, label, "1", 0, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, value, "1", 1, "", false, 0, "")
}
