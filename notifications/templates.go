package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/anjiri1684/omnilearn/models"
)

var emailTemplates = template.Must(template.New("emails").Funcs(template.FuncMap{
	"inr":  func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
	"date": func(t time.Time) string { return t.Format("02 Jan 2006 15:04") },
}).Parse(`
{{define "pending"}}<h2>Hi {{.Name}},</h2>
<p>We received your payment of <strong>{{inr .Amount}}</strong> and it is now being verified.</p>
<ul>{{range .Transactions}}<li>{{.CourseTitle}} (order {{.OrderID}})</li>{{end}}</ul>
<p>Reference: {{.Reference}}. You will get another email once an admin approves it.</p>{{end}}

{{define "approved"}}<h2>Hi {{.CustomerName}},</h2>
<p>Your payment for <strong>{{.CourseTitle}}</strong> (order {{.OrderID}}) has been approved. Welcome aboard!</p>
{{if .ReceiptURL}}<p><a href="{{.ReceiptURL}}">Download your receipt</a></p>{{end}}{{end}}

{{define "rejected"}}<h2>Hi {{.CustomerName}},</h2>
<p>We could not verify your payment for <strong>{{.CourseTitle}}</strong> (order {{.OrderID}}).</p>
{{if .FailureReason}}<p>Reason: {{.FailureReason}}</p>{{end}}
<p>Reply to this email if you believe this is a mistake.</p>{{end}}

{{define "digest"}}<h2>{{len .}} payment(s) awaiting approval</h2>
<table><tr><th>Order</th><th>Course</th><th>Customer</th><th>Amount</th><th>Date</th></tr>
{{range .}}<tr><td>{{.OrderID}}</td><td>{{.CourseTitle}}</td><td>{{.CustomerEmail}}</td><td>{{inr .Amount}}</td><td>{{date .Date}}</td></tr>{{end}}
</table>{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}

type pendingData struct {
	Name         string
	Amount       float64
	Reference    string
	Transactions []models.Transaction
}

func PaymentPendingEmail(co models.Checkout, txns []models.Transaction) (string, string, error) {
	body, err := render("pending", pendingData{
		Name:         co.CustomerName,
		Amount:       co.FinalTotal,
		Reference:    co.TransactionRef,
		Transactions: txns,
	})
	return "Your OmniLearn payment is being verified", body, err
}

type decisionData struct {
	models.Transaction
	ReceiptURL    string
	FailureReason string
}

func PaymentDecisionEmail(txn models.Transaction) (string, string, error) {
	data := decisionData{Transaction: txn}
	if txn.ReceiptURL != nil {
		data.ReceiptURL = *txn.ReceiptURL
	}
	if txn.FailureReason != nil {
		data.FailureReason = *txn.FailureReason
	}

	if txn.ApprovalStatus == models.ApprovalApproved {
		body, err := render("approved", data)
		return "Payment approved: " + txn.CourseTitle, body, err
	}
	body, err := render("rejected", data)
	return "Payment could not be verified: " + txn.CourseTitle, body, err
}

func ApprovalDigestEmail(pending []models.Transaction) (string, string, error) {
	body, err := render("digest", pending)
	return fmt.Sprintf("%d payment(s) awaiting approval", len(pending)), body, err
}
