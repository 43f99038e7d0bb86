package service

import (
	"context"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/internal/auth"
	"feedbackManagement/models"
	"feedbackManagement/repository"
)

// ListTeam returns the manager's direct reports.
func (s *Service) ListTeam(ctx context.Context, caller auth.Identity) ([]models.User, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	var out []models.User
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		out, err = st.Users.ListTeam(ctx, caller.UserID)
		return wrap("list team", err)
	})
	return out, err
}

// ListAvailableEmployees returns employees that have no manager yet.
func (s *Service) ListAvailableEmployees(ctx context.Context, caller auth.Identity) ([]models.User, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	var out []models.User
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		out, err = st.Users.ListUnassignedEmployees(ctx)
		return wrap("list unassigned employees", err)
	})
	return out, err
}

// AddTeamMember assigns an unassigned employee to the calling manager.
func (s *Service) AddTeamMember(ctx context.Context, caller auth.Identity, employeeID int64) (*models.User, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	var emp *models.User
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		emp, err = st.Users.GetByID(ctx, employeeID)
		if err != nil {
			return wrap("get employee", err)
		}
		if emp == nil {
			return apperr.NotFound("Employee not found")
		}
		if emp.Role != models.RoleEmployee {
			return apperr.Validation("Only employees can be added to a team")
		}
		if emp.ManagerID != nil {
			if *emp.ManagerID == caller.UserID {
				return apperr.Conflict("Employee is already in your team")
			}
			return apperr.Conflict("Employee already has a manager")
		}
		if err := st.Users.SetManager(ctx, emp.ID, &caller.UserID); err != nil {
			return wrap("set manager", err)
		}
		emp.ManagerID = &caller.UserID
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, emp.ID, models.NotifyTeam, caller.Name+" added you to their team")
	return emp, nil
}

// RemoveTeamMember detaches one of the caller's reports.
func (s *Service) RemoveTeamMember(ctx context.Context, caller auth.Identity, employeeID int64) error {
	if err := auth.RequireManager(caller); err != nil {
		return err
	}
	return s.inTx(ctx, func(st *repository.Store) error {
		emp, err := st.Users.GetByID(ctx, employeeID)
		if err != nil {
			return wrap("get employee", err)
		}
		if emp == nil || !emp.ReportsTo(caller.UserID) {
			return apperr.NotFoundOrForbidden("Employee not found in your team")
		}
		return wrap("clear manager", st.Users.SetManager(ctx, emp.ID, nil))
	})
}

// MyManager returns the calling employee's manager.
func (s *Service) MyManager(ctx context.Context, caller auth.Identity) (*models.User, error) {
	if err := auth.RequireEmployee(caller); err != nil {
		return nil, err
	}
	var mgr *models.User
	err := s.inTx(ctx, func(st *repository.Store) error {
		me, err := st.Users.GetByID(ctx, caller.UserID)
		if err != nil {
			return wrap("get user", err)
		}
		if me == nil || me.ManagerID == nil {
			return apperr.NotFound("No manager assigned")
		}
		mgr, err = st.Users.GetByID(ctx, *me.ManagerID)
		if err != nil {
			return wrap("get manager", err)
		}
		if mgr == nil {
			return apperr.NotFound("No manager assigned")
		}
		return nil
	})
	return mgr, err
}
