package dao

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ego-component/egorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*egorm.Component, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestPreferenceDAO_Find(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		userID     string
		mock       func(mock sqlmock.Sqlmock)
		wantUserID string
		assertErr  assert.ErrorAssertionFunc
	}{
		{
			name:   "查找成功",
			userID: "user-1",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "consent_given"}).
					AddRow(1, "user-1", true)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `user_communication_preferences` WHERE user_id = ?")).
					WithArgs("user-1", 1).
					WillReturnRows(rows)
			},
			wantUserID: "user-1",
			assertErr:  assert.NoError,
		},
		{
			name:   "记录不存在",
			userID: "user-miss",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `user_communication_preferences` WHERE user_id = ?")).
					WithArgs("user-miss", 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			assertErr: func(t assert.TestingT, err error, i ...any) bool {
				return assert.ErrorIs(t, err, gorm.ErrRecordNotFound, i...)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			tc.mock(mock)
			d := NewPreferenceDAO(db)

			pref, err := d.Find(t.Context(), tc.userID)

			tc.assertErr(t, err)
			assert.Equal(t, tc.wantUserID, pref.UserID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPreferenceDAO_Save(t *testing.T) {
	t.Parallel()

	t.Run("不存在时插入", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `user_communication_preferences` WHERE user_id = ?")).
			WithArgs("user-new", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `user_communication_preferences`")).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()
		d := NewPreferenceDAO(db)

		saved, err := d.Save(t.Context(), UserPreference{UserID: "user-new", ConsentGiven: true})

		assert.NoError(t, err)
		assert.Equal(t, "user-new", saved.UserID)
		assert.NotZero(t, saved.Ctime)
		assert.Equal(t, saved.Ctime, saved.Utime)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("已存在时覆盖并保留创建时间", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `user_communication_preferences` WHERE user_id = ?")).
			WithArgs("user-1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ctime"}).AddRow(7, "user-1", 12345))
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE `user_communication_preferences` SET")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		d := NewPreferenceDAO(db)

		saved, err := d.Save(t.Context(), UserPreference{UserID: "user-1", OptedOut: true})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), saved.ID)
		assert.Equal(t, int64(12345), saved.Ctime)
		assert.Greater(t, saved.Utime, saved.Ctime)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestChannelIdentifierDAO_Delete(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `user_channel_identifiers` WHERE user_id = ? AND channel = ? AND identifier = ?")).
		WithArgs("user-1", "SMS", "+8613800001111").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	d := NewChannelIdentifierDAO(db)

	affected, err := d.Delete(t.Context(), "user-1", "SMS", "+8613800001111")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
