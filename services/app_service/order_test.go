package app_service

import (
	"errors"
	"testing"
	"time"

	"tip-tracker/db"
	"tip-tracker/inout"
	"tip-tracker/model/app_model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var orderColumns = []string{
	"id", "no", "user_id", "date", "timestamp",
	"tip_type", "tip_amount", "create_time", "update_time",
}

// newTestService 用 sqlmock 顶替 db.Dao，订单语义可以不起库验证
func newTestService(t *testing.T) (*OrderService, sqlmock.Sqlmock, func()) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	old := db.Dao
	db.Dao = gdb

	svc := NewOrderService()
	return svc, mock, func() {
		db.Dao = old
		sqlDB.Close()
	}
}

func orderRow(mockRows *sqlmock.Rows, o app_model.DeliveryOrder) *sqlmock.Rows {
	return mockRows.AddRow(
		o.Id, o.No, o.UserId, o.Date, o.Timestamp,
		o.TipType, o.TipAmount.String(), o.CreateTime, o.UpdateTime,
	)
}

func TestAddOrderCooldown(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	current := base
	svc.now = func() time.Time { return current }

	// 冷却基准缺失，先查一次库（无历史订单）
	mock.ExpectQuery("SELECT (.+) FROM `delivery_order` WHERE user_id = (.+) ORDER BY timestamp DESC").
		WillReturnRows(sqlmock.NewRows(orderColumns))
	mock.ExpectExec("INSERT INTO `delivery_order`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	first, err := svc.AddOrder(7)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", first.Date)
	assert.Equal(t, base.UnixMilli(), first.Timestamp)
	assert.NotEmpty(t, first.No)

	// 60 秒内第二次下单：拒绝，且不碰数据库
	current = base.Add(30 * time.Second)
	_, err = svc.AddOrder(7)
	assert.ErrorIs(t, err, ErrCooldownActive)

	// 间隔满 60 秒后恢复，冷却基准切到新订单
	current = base.Add(61 * time.Second)
	mock.ExpectExec("INSERT INTO `delivery_order`").
		WillReturnResult(sqlmock.NewResult(2, 1))
	second, err := svc.AddOrder(7)
	require.NoError(t, err)
	assert.Equal(t, current.UnixMilli(), second.Timestamp)

	current = current.Add(10 * time.Second)
	_, err = svc.AddOrder(7)
	assert.ErrorIs(t, err, ErrCooldownActive)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddOrderCooldownCrossesMidnight(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	// 23:59:30 下单，午夜后 30 秒再下：纯时间差判断，跨天不重置
	base := time.Date(2024, 3, 1, 23, 59, 30, 0, time.Local)
	current := base
	svc.now = func() time.Time { return current }

	mock.ExpectQuery("SELECT (.+) FROM `delivery_order` WHERE user_id = (.+) ORDER BY timestamp DESC").
		WillReturnRows(sqlmock.NewRows(orderColumns))
	mock.ExpectExec("INSERT INTO `delivery_order`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := svc.AddOrder(7)
	require.NoError(t, err)

	current = base.Add(60 * time.Second) // 2024-03-02 00:00:30
	_, err = svc.AddOrder(7)
	assert.ErrorIs(t, err, ErrCooldownActive)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddOrderRemoteFailureLeavesStateUnchanged(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return current }

	mock.ExpectQuery("SELECT (.+) FROM `delivery_order` WHERE user_id = (.+) ORDER BY timestamp DESC").
		WillReturnRows(sqlmock.NewRows(orderColumns))
	mock.ExpectExec("INSERT INTO `delivery_order`").
		WillReturnError(errors.New("connection refused"))

	_, err := svc.AddOrder(3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCooldownActive)

	// 写失败不进入冷却，立即重试会再次尝试入库
	mock.ExpectExec("INSERT INTO `delivery_order`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	_, err = svc.AddOrder(3)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddOrderSeedsCooldownFromDatabase(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return current }

	// 进程重启后第一次下单：库里 30 秒前有一单，仍在冷却期
	last := app_model.DeliveryOrder{
		Id: 9, No: "n-9", UserId: 3, Date: "2024-03-01",
		Timestamp: current.Add(-30 * time.Second).UnixMilli(),
		TipAmount: decimal.Zero,
	}
	mock.ExpectQuery("SELECT (.+) FROM `delivery_order` WHERE user_id = (.+) ORDER BY timestamp DESC").
		WillReturnRows(orderRow(sqlmock.NewRows(orderColumns), last))

	_, err := svc.AddOrder(3)
	assert.ErrorIs(t, err, ErrCooldownActive)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachTipOverwrite(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	current := time.Date(2024, 3, 1, 18, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return current }

	today := app_model.DeliveryOrder{
		Id: 5, No: "n-5", UserId: 7, Date: "2024-03-01",
		Timestamp: current.Add(-5 * time.Minute).UnixMilli(),
		TipAmount: decimal.Zero,
	}

	mock.ExpectQuery("SELECT (.+) FROM `delivery_order` WHERE user_id = (.+) AND date = (.+) ORDER BY timestamp ASC").
		WillReturnRows(orderRow(sqlmock.NewRows(orderColumns), today))
	mock.ExpectExec("UPDATE `delivery_order` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := svc.AttachTip(7, inout.AttachTipReq{
		Type:   app_model.TipTypeCash,
		Amount: decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, app_model.TipTypeCash, got.TipType)
	assert.True(t, got.TipAmount.Equal(decimal.RequireFromString("5.00")))

	// 再次附加：覆盖而不是叠加
	withTip := today
	withTip.TipType = app_model.TipTypeCash
	withTip.TipAmount = decimal.RequireFromString("5.00")
	mock.ExpectQuery("SELECT (.+) FROM `delivery_order` WHERE user_id = (.+) AND date = (.+) ORDER BY timestamp ASC").
		WillReturnRows(orderRow(sqlmock.NewRows(orderColumns), withTip))
	mock.ExpectExec("UPDATE `delivery_order` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err = svc.AttachTip(7, inout.AttachTipReq{
		Type:   app_model.TipTypePrepaid,
		Amount: decimal.RequireFromString("3.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, app_model.TipTypePrepaid, got.TipType)
	assert.True(t, got.TipAmount.Equal(decimal.RequireFromString("3.50")))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachTipTargetsLatestOrder(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	current := time.Date(2024, 3, 1, 18, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return current }

	early := app_model.DeliveryOrder{
		Id: 5, No: "n-5", UserId: 7, Date: "2024-03-01",
		Timestamp: current.Add(-2 * time.Hour).UnixMilli(),
		TipAmount: decimal.Zero,
	}
	late := app_model.DeliveryOrder{
		Id: 6, No: "n-6", UserId: 7, Date: "2024-03-01",
		Timestamp: current.Add(-5 * time.Minute).UnixMilli(),
		TipAmount: decimal.Zero,
	}

	rows := sqlmock.NewRows(orderColumns)
	orderRow(rows, early)
	orderRow(rows, late)
	mock.ExpectQuery("SELECT (.+) FROM `delivery_order` WHERE user_id = (.+) AND date = (.+) ORDER BY timestamp ASC").
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE `delivery_order` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := svc.AttachTip(7, inout.AttachTipReq{
		Type:   app_model.TipTypeCash,
		Amount: decimal.RequireFromString("2.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, got.Id)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachTipNoOrderToday(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `delivery_order` WHERE user_id = (.+) AND date = (.+) ORDER BY timestamp ASC").
		WillReturnRows(sqlmock.NewRows(orderColumns))

	_, err := svc.AttachTip(7, inout.AttachTipReq{
		Type:   app_model.TipTypeCash,
		Amount: decimal.RequireFromString("5.00"),
	})
	assert.ErrorIs(t, err, ErrNoOrderToday)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachTipAmbiguousTimestamp(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	current := time.Date(2024, 3, 1, 18, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return current }

	ts := current.Add(-5 * time.Minute).UnixMilli()
	rows := sqlmock.NewRows(orderColumns)
	orderRow(rows, app_model.DeliveryOrder{Id: 5, No: "n-5", UserId: 7, Date: "2024-03-01", Timestamp: ts, TipAmount: decimal.Zero})
	orderRow(rows, app_model.DeliveryOrder{Id: 6, No: "n-6", UserId: 7, Date: "2024-03-01", Timestamp: ts, TipAmount: decimal.Zero})

	mock.ExpectQuery("SELECT (.+) FROM `delivery_order` WHERE user_id = (.+) AND date = (.+) ORDER BY timestamp ASC").
		WillReturnRows(rows)

	// 最大时间戳并列：确定性拒绝，不做更新
	_, err := svc.AttachTip(7, inout.AttachTipReq{
		Type:   app_model.TipTypeCash,
		Amount: decimal.RequireFromString("5.00"),
	})
	assert.ErrorIs(t, err, ErrAmbiguousLastOrder)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachTipRejectsNonPositiveAmount(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	_, err := svc.AttachTip(7, inout.AttachTipReq{
		Type:   app_model.TipTypeCash,
		Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrInvalidTipAmount)
}

func TestResetAllClearsOrdersAndCooldown(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return current }

	svc.mu.Lock()
	svc.lastOrderTime[9] = current.Add(-10 * time.Second).UnixMilli()
	svc.mu.Unlock()

	mock.ExpectExec("DELETE FROM `delivery_order`").
		WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, svc.ResetAll(9))
	assert.Zero(t, svc.CooldownRemaining(9, current))

	// 清空后再拉取，得到空序列
	mock.ExpectQuery("SELECT (.+) FROM `delivery_order` WHERE user_id = (.+) ORDER BY timestamp ASC").
		WillReturnRows(sqlmock.NewRows(orderColumns))
	orders, err := svc.LoadOrders(9)
	require.NoError(t, err)
	assert.Empty(t, orders)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadOrdersRefreshesCooldownBaseline(t *testing.T) {
	svc, mock, cleanup := newTestService(t)
	defer cleanup()

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return current }

	rows := sqlmock.NewRows(orderColumns)
	orderRow(rows, app_model.DeliveryOrder{
		Id: 1, No: "n-1", UserId: 7, Date: "2024-03-01",
		Timestamp: current.Add(-2 * time.Hour).UnixMilli(),
		TipType:   app_model.TipTypeCash,
		TipAmount: decimal.RequireFromString("5.00"),
	})
	orderRow(rows, app_model.DeliveryOrder{
		Id: 2, No: "n-2", UserId: 7, Date: "2024-03-01",
		Timestamp: current.Add(-20 * time.Second).UnixMilli(),
		TipAmount: decimal.Zero,
	})

	mock.ExpectQuery("SELECT (.+) FROM `delivery_order` WHERE user_id = (.+) ORDER BY timestamp ASC").
		WillReturnRows(rows)

	orders, err := svc.LoadOrders(7)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].TipAmount.Equal(decimal.RequireFromString("5.00")))

	// 最近一单 20 秒前，下一单仍在冷却期且不触发库操作
	_, err = svc.AddOrder(7)
	assert.ErrorIs(t, err, ErrCooldownActive)

	require.NoError(t, mock.ExpectationsWereMet())
}
