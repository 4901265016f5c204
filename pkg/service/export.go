package service

import (
	"bytes"
	"context"
	"net/http"

	"github.com/xuri/excelize/v2"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/utils"
)

const exportSheet = "Sheet1"

var exportHeader = []string{
	"Order ID", "Created At", "Status", "Priority", "Customer", "Phone",
	"Pickup Address", "Delivery Address", "Scheduled At", "Merchant ID", "Delivery Person ID", "Notes",
}

func exportRow(o model.Order) []interface{} {
	scheduled := ""
	if o.ScheduledAt != nil {
		scheduled = o.ScheduledAt.Format(utils.TIME_FORMAT_FOR_EXPORT)
	}
	dp := ""
	if o.DeliveryPersonID != nil {
		dp = o.DeliveryPersonID.String()
	}
	return []interface{}{
		o.ID.String(),
		o.CreatedAt.Format(utils.TIME_FORMAT_FOR_EXPORT),
		string(o.Status),
		string(o.Priority),
		o.CustomerName,
		o.CustomerPhone,
		o.PickupAddress,
		o.DeliveryAddress,
		scheduled,
		o.MerchantID.String(),
		dp,
		o.Notes,
	}
}

// ExportOrders renders the caller's orders as an xlsx workbook.
func (s *OrderService) ExportOrders(ctx context.Context, caller model.Caller, req model.OrderParam) (*bytes.Buffer, error) {
	log := logger.WithCtx(ctx, "OrderService.ExportOrders")

	if req.Status != "" && !model.IsValidOrderStatus(req.Status) {
		return nil, badRequest("Invalid status")
	}

	orders, err := s.repo.GetAllOrderForExport(ctx, req, caller, nil)
	if err != nil {
		return nil, err
	}

	buf, err := buildOrderSheet(orders)
	if err != nil {
		log.WithError(err).Error("error_500: build export sheet")
		return nil, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	return buf, nil
}

func buildOrderSheet(orders []model.Order) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err = f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err = f.SetCellStyle(exportSheet, "A1", last, bold); err != nil {
		return nil, err
	}

	for r, o := range orders {
		for c, v := range exportRow(o) {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err = f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}
