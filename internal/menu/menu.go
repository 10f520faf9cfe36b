// Package menu is the interactive console surface. It is an external
// consumer of the registry: every action goes through the public operations
// of the state manager or the logged-in user's permission-gated methods.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vk/pmcore/internal/ctxlog"
	"github.com/vk/pmcore/internal/entity"
	"github.com/vk/pmcore/internal/permission"
	"github.com/vk/pmcore/internal/state"
	"github.com/vk/pmcore/internal/status"
	"github.com/vk/pmcore/internal/user"
)

const header = "PMCore - project and task registry"

// Menu drives a line-oriented console session against the registry.
type Menu struct {
	reg *state.Manager
	in  *bufio.Scanner
	out io.Writer
}

// New creates a menu reading commands from in and writing prompts to out.
func New(reg *state.Manager, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		reg: reg,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run loops between the start menu and the main menu until the user exits or
// input ends.
func (m *Menu) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	fmt.Fprintln(m.out, header)

	for {
		if m.reg.CurrentUser() == nil {
			if done := m.startMenu(); done {
				logger.Debug("Console session ended from start menu.")
				return nil
			}
			continue
		}
		if done := m.mainMenu(); done {
			logger.Debug("Console session ended from main menu.")
			return nil
		}
	}
}

// startMenu handles the pre-login choices. It reports true when the session
// should end.
func (m *Menu) startMenu() bool {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Start-Up Menu:")
	fmt.Fprintln(m.out, " 1) Login")
	fmt.Fprintln(m.out, " 2) Register")
	fmt.Fprintln(m.out, " 3) Exit")

	choice, ok := m.readLine("Select an option:")
	if !ok {
		return true
	}
	switch choice {
	case "1":
		m.login()
	case "2":
		m.register()
	case "3":
		return true
	default:
		fmt.Fprintln(m.out, "Unknown option.")
	}
	return false
}

func (m *Menu) login() {
	id, ok := m.readLine("Enter the user id to log in:")
	if !ok || id == "" {
		fmt.Fprintln(m.out, "A user id is required.")
		return
	}
	if st := m.reg.UserLogin(id); st != status.Ok {
		fmt.Fprintf(m.out, "Log in failed with status %s.\n", st)
		return
	}
	fmt.Fprintf(m.out, "Logged in as %s.\n", id)
}

func (m *Menu) register() {
	id, ok := m.readLine("Enter a new user id (empty for a generated one):")
	if !ok {
		return
	}
	roleChoice, ok := m.readLine("Role: 1) Admin 2) ProjectManager 3) Developer 4) Tester")
	if !ok {
		return
	}
	var u *user.User
	switch roleChoice {
	case "1":
		u = user.NewAdmin(id)
	case "2":
		u = user.NewProjectManager(id)
	case "3":
		u = user.NewDeveloper(id)
	case "4":
		u = user.NewTester(id)
	default:
		fmt.Fprintln(m.out, "Unknown role.")
		return
	}
	if st := m.reg.UserRegister(u.ID(), u); st != status.Ok {
		fmt.Fprintf(m.out, "Registration failed with status %s.\n", st)
		return
	}
	fmt.Fprintf(m.out, "Registered and logged in as %s (%s).\n", u.ID(), u.Role())
}

// mainMenu handles one logged-in action. It reports true when the session
// should end.
func (m *Menu) mainMenu() bool {
	current := m.reg.CurrentUser()
	fmt.Fprintln(m.out)
	fmt.Fprintf(m.out, "Main Menu (logged in as %s):\n", current.ID())
	fmt.Fprintln(m.out, "  1) Create entity          7) Disassociate project/task")
	fmt.Fprintln(m.out, "  2) Delete entity          8) Associate user with entity")
	fmt.Fprintln(m.out, "  3) Update entity property 9) Disassociate user from entity")
	fmt.Fprintln(m.out, "  4) Show entity           10) User associations")
	fmt.Fprintln(m.out, "  5) Entity report         11) User report")
	fmt.Fprintln(m.out, "  6) Associate project/task 12) Change user property")
	fmt.Fprintln(m.out, " 13) Delete user           14) List entities")
	fmt.Fprintln(m.out, " 15) Registry report       16) Logout")
	fmt.Fprintln(m.out, " 17) Exit")

	choice, ok := m.readLine("Select an option:")
	if !ok {
		return true
	}
	switch choice {
	case "1":
		m.createEntity(current)
	case "2":
		m.deleteEntity(current)
	case "3":
		m.updateEntityProperty(current)
	case "4":
		m.showEntity()
	case "5":
		m.entityReport(current)
	case "6":
		m.associateEntities(current, true)
	case "7":
		m.associateEntities(current, false)
	case "8":
		m.associateUser(current, true)
	case "9":
		m.associateUser(current, false)
	case "10":
		m.userAssociations(current)
	case "11":
		m.userReport(current)
	case "12":
		m.changeUserProperty(current)
	case "13":
		m.deleteUser(current)
	case "14":
		m.listEntities()
	case "15":
		fmt.Fprintln(m.out, m.reg.Report())
	case "16":
		if st := m.reg.UserLogout(); st != status.Ok {
			fmt.Fprintf(m.out, "Logout failed with status %s.\n", st)
		}
	case "17":
		return true
	default:
		fmt.Fprintln(m.out, "Unknown option.")
	}
	return false
}

func (m *Menu) createEntity(current *user.User) {
	kind, ok := m.readKind()
	if !ok {
		return
	}
	id, ok := m.readLine("Entity id:")
	if !ok {
		return
	}
	description, ok := m.readLine("Description (optional):")
	if !ok {
		return
	}
	m.reportResult(current.CreateEntity(m.reg, kind, id, description))
}

func (m *Menu) deleteEntity(current *user.User) {
	id, kind, ok := m.readExistingEntity()
	if !ok {
		return
	}
	m.reportResult(current.DeleteEntity(m.reg, kind, id))
}

func (m *Menu) updateEntityProperty(current *user.User) {
	id, kind, ok := m.readExistingEntity()
	if !ok {
		return
	}
	choice, ok := m.readLine("Property: 1) Description 2) Status 3) Priority")
	if !ok {
		return
	}
	var prop entity.Property
	switch choice {
	case "1":
		prop = entity.PropertyDescription
	case "2":
		prop = entity.PropertyStatus
	case "3":
		prop = entity.PropertyPriority
	default:
		fmt.Fprintln(m.out, "Unknown property.")
		return
	}
	raw, ok := m.readLine(fmt.Sprintf("New %s value:", prop))
	if !ok {
		return
	}
	value, ok := entity.ParseValue(prop, raw)
	if !ok {
		fmt.Fprintf(m.out, "'%s' is not a valid %s value.\n", raw, prop)
		return
	}
	m.reportResult(current.ChangeEntityProperty(m.reg, kind, id, prop, value))
}

func (m *Menu) showEntity() {
	id, ok := m.readLine("Entity id:")
	if !ok {
		return
	}
	e, found := m.reg.Entity(id)
	if !found {
		fmt.Fprintf(m.out, "Entity %s not found.\n", id)
		return
	}
	fmt.Fprintln(m.out, e.Details())
}

func (m *Menu) entityReport(current *user.User) {
	id, ok := m.readLine("Entity id:")
	if !ok {
		return
	}
	res, report := current.GenerateEntityReport(m.reg, id)
	if res != status.OperationOk {
		fmt.Fprintln(m.out, "Operation failed.")
		return
	}
	fmt.Fprintln(m.out, report)
}

func (m *Menu) associateEntities(current *user.User, link bool) {
	a, ok := m.readLine("First entity id:")
	if !ok {
		return
	}
	b, ok := m.readLine("Second entity id:")
	if !ok {
		return
	}
	if link {
		m.reportResult(current.AssociateEntityToEntity(m.reg, a, b))
		return
	}
	m.reportResult(current.DissociateEntityFromEntity(m.reg, a, b))
}

func (m *Menu) associateUser(current *user.User, link bool) {
	userID, ok := m.readLine("User id:")
	if !ok {
		return
	}
	entityID, ok := m.readLine("Entity id:")
	if !ok {
		return
	}
	if link {
		m.reportResult(current.AssociateUserWithEntity(m.reg, userID, entityID))
		return
	}
	m.reportResult(current.DisassociateUserWithEntity(m.reg, userID, entityID))
}

func (m *Menu) userAssociations(current *user.User) {
	id, ok := m.readLine("User id:")
	if !ok {
		return
	}
	res, view := current.GetUserAssociations(m.reg, id)
	if res != status.OperationOk {
		fmt.Fprintln(m.out, "Operation failed.")
		return
	}
	if view == "" {
		fmt.Fprintf(m.out, "User %s has no associated entities.\n", id)
		return
	}
	fmt.Fprintln(m.out, view)
}

func (m *Menu) userReport(current *user.User) {
	id, ok := m.readLine("User id:")
	if !ok {
		return
	}
	res, report := current.GenerateUserReport(m.reg, id)
	if res != status.OperationOk {
		fmt.Fprintln(m.out, "Operation failed.")
		return
	}
	fmt.Fprintln(m.out, report)
}

func (m *Menu) changeUserProperty(current *user.User) {
	id, ok := m.readLine("User id:")
	if !ok {
		return
	}
	choice, ok := m.readLine("Property: 1) Rename 2) Add permission 3) Remove permission")
	if !ok {
		return
	}
	switch choice {
	case "1":
		newID, ok := m.readLine("New user id:")
		if !ok {
			return
		}
		m.reportResult(current.ChangeUserProperty(m.reg, id, user.PropertyID, user.IDValue(newID)))
	case "2", "3":
		perm, ok := m.readPermission()
		if !ok {
			return
		}
		prop := user.PropertyAddPermission
		if choice == "3" {
			prop = user.PropertyRemovePermission
		}
		m.reportResult(current.ChangeUserProperty(m.reg, id, prop, user.PermissionValue(perm)))
	default:
		fmt.Fprintln(m.out, "Unknown property.")
	}
}

func (m *Menu) deleteUser(current *user.User) {
	id, ok := m.readLine("User id to delete:")
	if !ok {
		return
	}
	m.reportResult(current.DeleteUser(m.reg, id))
}

func (m *Menu) listEntities() {
	ids := m.reg.EntityIDs()
	if len(ids) == 0 {
		fmt.Fprintln(m.out, "No entities registered.")
		return
	}
	for _, id := range ids {
		e, _ := m.reg.Entity(id)
		fmt.Fprintf(m.out, "%-8s %s\n", e.Kind(), id)
	}
}

func (m *Menu) readKind() (entity.Kind, bool) {
	choice, ok := m.readLine("Kind: 1) Project 2) Task")
	if !ok {
		return entity.Project, false
	}
	switch choice {
	case "1":
		return entity.Project, true
	case "2":
		return entity.Task, true
	default:
		fmt.Fprintln(m.out, "Unknown kind.")
		return entity.Project, false
	}
}

// readExistingEntity resolves an id to its kind so the right permission is
// checked. The registry re-checks existence when the operation runs.
func (m *Menu) readExistingEntity() (string, entity.Kind, bool) {
	id, ok := m.readLine("Entity id:")
	if !ok {
		return "", entity.Project, false
	}
	e, found := m.reg.Entity(id)
	if !found {
		fmt.Fprintf(m.out, "Entity %s not found.\n", id)
		return "", entity.Project, false
	}
	return id, e.Kind(), true
}

func (m *Menu) readPermission() (permission.Permission, bool) {
	raw, ok := m.readLine("Permission name (e.g. CanCreateTask):")
	if !ok {
		return 0, false
	}
	parsed, ok := permission.Parse(raw)
	if !ok {
		fmt.Fprintf(m.out, "Unknown permission '%s'.\n", raw)
		return 0, false
	}
	return parsed, true
}

func (m *Menu) reportResult(res fmt.Stringer) {
	fmt.Fprintf(m.out, "Result: %s\n", res)
}

// readLine prompts and reads one trimmed line. It reports false when input
// is exhausted.
func (m *Menu) readLine(prompt string) (string, bool) {
	fmt.Fprintln(m.out, prompt)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}
