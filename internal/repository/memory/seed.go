package memory

import (
	"github.com/escuela-horarios/attendance-backend/internal/domain/catalog"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
)

// SeedDemo fills an empty store with a small institution so the memory
// driver is usable without a database. Every account shares passwordHash.
func SeedDemo(store *Store, passwordHash string) {
	leaderAccount := "20240001"
	group := store.AddGroup(catalog.Group{Name: "3A", Classroom: "Aula 12", Building: "Edificio B", LeaderAccount: &leaderAccount})
	calculus := store.AddSubject(catalog.Subject{Name: "Cálculo", Semester: 3})
	physics := store.AddSubject(catalog.Subject{Name: "Física", Semester: 3})

	store.AddUser(user.User{Name: "Administrador", Email: "admin@escuela.edu", PasswordHash: passwordHash, Role: user.RoleAdmin})
	store.AddUser(user.User{Name: "Checador", Email: "checker@escuela.edu", PasswordHash: passwordHash, Role: user.RoleChecker})
	store.AddUser(user.User{Name: "Jefe de grupo", Email: "leader@escuela.edu", PasswordHash: passwordHash, Role: user.RoleGroupLeader, AccountNumber: &leaderAccount})
	ana := store.AddUser(user.User{Name: "Ana López", Email: "ana@escuela.edu", PasswordHash: passwordHash, Role: user.RoleTeacher})
	juan := store.AddUser(user.User{Name: "Juan Pérez", Email: "juan@escuela.edu", PasswordHash: passwordHash, Role: user.RoleTeacher})

	slots := []schedule.Slot{
		{TeacherID: ana.ID, GroupID: group.ID, SubjectID: calculus.ID, Day: schedule.DayMonday, Hour: "07:00"},
		{TeacherID: ana.ID, GroupID: group.ID, SubjectID: calculus.ID, Day: schedule.DayWednesday, Hour: "07:00"},
		{TeacherID: juan.ID, GroupID: group.ID, SubjectID: physics.ID, Day: schedule.DayTuesday, Hour: "09:00"},
		{TeacherID: juan.ID, GroupID: group.ID, SubjectID: physics.ID, Day: schedule.DayThursday, Hour: "09:00"},
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	for _, s := range slots {
		store.nextSlotID++
		s.ID = store.nextSlotID
		s.CreatedAt = store.now()
		s.UpdatedAt = s.CreatedAt
		store.slots[s.ID] = s
	}
}
