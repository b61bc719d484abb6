package attendance_usecases

import (
	"sync"

	"clockedin.io/application/repository"
)

var instanceOnce = sync.Once{}

var instance *Service

// Instance wires the service to the mongo and redis repositories. Tests
// construct their own Service with fakes instead.
func Instance() *Service {
	instanceOnce.Do(func() {
		instance = NewService(
			repository.AttendanceRepo(),
			repository.FaceProfileRepo(),
			repository.PolicyRepo(),
			repository.ResultCacheRepo{},
		)
	})
	return instance
}
