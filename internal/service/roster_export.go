package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/MadickAngeCesar/MessagingApp/internal/domain"
	"github.com/MadickAngeCesar/MessagingApp/internal/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// RosterExportHeader 花名册导出表头
var RosterExportHeader = []string{
	"Room Number",
	"Tenant Name",
	"Tenant Phone",
}

// RosterService 房间花名册导出
type RosterService interface {
	// ExportRoster 把房间-租客花名册渲染为 xlsx 字节流
	ExportRoster(ctx context.Context) ([]byte, error)
}

// rosterService 实现
type rosterService struct {
	roomsRepo repository.RoomsRepository
	usersRepo repository.UsersRepository
	logger    *zap.Logger
}

// NewRosterService 创建 RosterService 实例
func NewRosterService(roomsRepo repository.RoomsRepository, usersRepo repository.UsersRepository, logger *zap.Logger) RosterService {
	return &rosterService{
		roomsRepo: roomsRepo,
		usersRepo: usersRepo,
		logger:    logger,
	}
}

// ExportRoster 生成花名册 Excel 文件
// 空房间的租客列留白；tenant_id 指向已不存在账号的行同样留白
func (s *rosterService) ExportRoster(ctx context.Context) ([]byte, error) {
	rooms, err := s.roomsRepo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Roster"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close() // Close on error
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// 写入表头
	for col, header := range RosterExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	// 写入数据行
	for rowIdx, room := range rooms {
		row := rowIdx + 2 // 从第2行开始（第1行是表头）

		tenantName := ""
		tenantPhone := ""
		if room.TenantID.Valid {
			tenant, err := s.usersRepo.GetUser(ctx, room.TenantID.Int64)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				f.Close()
				return nil, err
			}
			if err == nil {
				tenantName = tenant.Name
				tenantPhone = tenant.Phone
			}
		}

		values := []any{room.RoomNumber, tenantName, tenantPhone}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	s.logger.Info("Roster exported", zap.Int("rooms", len(rooms)))
	return buf.Bytes(), nil
}
