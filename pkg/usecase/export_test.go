package usecase

import "time"

// SetAuthClock replaces the auth clock for testing
func SetAuthClock(uc *AuthUseCase, now func() time.Time) {
	uc.now = now
}

// SetMeetingClock replaces the meeting clock for testing
func SetMeetingClock(uc *MeetingUseCase, now func() time.Time) {
	uc.now = now
}

// SetReportClock replaces the report clock for testing
func SetReportClock(uc *ReportUseCase, now func() time.Time) {
	uc.now = now
}
