package export

import (
	"io"
	"strconv"

	"github.com/tealeg/xlsx"

	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
)

const moneyFormat = "0.00"

type xlsxWriter struct {
	out   io.Writer
	file  *xlsx.File
	sheet *xlsx.Sheet
}

func newXLSXWriter(w io.Writer) (*xlsxWriter, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range Header {
		header.AddCell().SetString(h)
	}
	return &xlsxWriter{out: w, file: file, sheet: sheet}, nil
}

func (x *xlsxWriter) WriteOrder(order *domain.Order) error {
	for _, r := range rows(order) {
		row := x.sheet.AddRow()
		row.AddCell().SetString(r.OrderID)
		row.AddCell().SetString(r.CreatedAt)
		row.AddCell().SetString(r.Username)
		row.AddCell().SetString(r.UserID)
		row.AddCell().SetString(r.Status)
		row.AddCell().SetString(r.ProductID)
		row.AddCell().SetString(r.ProductName)
		if r.hasLine {
			row.AddCell().SetInt64(r.Quantity)
			addMoney(row, r.UnitPrice)
			addMoney(row, r.Subtotal)
		} else {
			row.AddCell()
			row.AddCell()
			row.AddCell()
		}
		addMoney(row, r.Total)
	}
	return nil
}

func (x *xlsxWriter) Close() error {
	return x.file.Write(x.out)
}

func addMoney(row *xlsx.Row, amount string) {
	f, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		row.AddCell().SetString(amount)
		return
	}
	row.AddCell().SetFloatWithFormat(f, moneyFormat)
}
