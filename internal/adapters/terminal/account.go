package terminal

import (
	"strings"

	"github.com/urfave/cli/v2"

	"afisha/internal/application"
	"afisha/internal/domain/entities"
)

func (a *App) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in to the afisha account.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "password", EnvVars: []string{"AFISHA_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			email := a.prompt("Email", c.String("email"))
			password := a.prompt("Password", c.String("password"))
			user, err := a.session.Login(c.Context, email, password)
			if err != nil {
				return a.fail(err)
			}
			a.success("auth.logged_in", map[string]any{"Email": user.Email})
			return nil
		},
	}
}

func (a *App) registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an afisha account.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "password", EnvVars: []string{"AFISHA_PASSWORD"}},
			&cli.StringFlag{Name: "name", Usage: "Display name."},
			&cli.BoolFlag{Name: "verify", Value: true, Usage: "Send the verification email right away."},
		},
		Action: func(c *cli.Context) error {
			email := a.prompt("Email", c.String("email"))
			password := a.prompt("Password", c.String("password"))
			user, err := a.session.Register(c.Context, email, password, c.String("name"))
			if err != nil {
				return a.fail(err)
			}
			a.success("auth.registered", map[string]any{"Email": user.Email})
			if c.Bool("verify") {
				if err := a.session.SendVerificationEmail(c.Context); err != nil {
					return a.fail(err)
				}
				a.success("auth.verification_sent", nil)
			}
			return nil
		},
	}
}

func (a *App) verifyEmailCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify-email",
		Usage: "Send the email verification link again.",
		Action: func(c *cli.Context) error {
			if err := a.session.SendVerificationEmail(c.Context); err != nil {
				return a.fail(err)
			}
			a.success("auth.verification_sent", nil)
			return nil
		},
	}
}

func (a *App) resetPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset-password",
		Usage: "Request a password reset, or complete it with --code.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "code", Usage: "Code received by email (oobCode)."},
			&cli.StringFlag{Name: "password", EnvVars: []string{"AFISHA_NEW_PASSWORD"}, Usage: "New password, with --code."},
		},
		Action: func(c *cli.Context) error {
			if code := c.String("code"); code != "" {
				password := a.prompt("New password", c.String("password"))
				if err := a.session.ConfirmPasswordReset(c.Context, code, password); err != nil {
					return a.fail(err)
				}
				a.success("auth.reset_done", nil)
				return nil
			}
			email := a.prompt("Email", c.String("email"))
			if err := a.session.RequestPasswordReset(c.Context, email); err != nil {
				return a.fail(err)
			}
			a.success("auth.reset_sent", map[string]any{"Email": email})
			return nil
		},
	}
}

func (a *App) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Sign out and forget the stored session.",
		Action: func(c *cli.Context) error {
			if err := a.session.Logout(c.Context); err != nil {
				return a.fail(err)
			}
			a.success("auth.logged_out", nil)
			return nil
		},
	}
}

func (a *App) profileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Show the signed-in profile.",
		Action: func(c *cli.Context) error {
			if a.session.Current() == nil {
				a.renderUser(nil)
				return nil
			}
			user, err := a.session.RefreshProfile(c.Context)
			if err != nil {
				return a.fail(err)
			}
			a.renderUser(user)
			return nil
		},
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Update the display name, phone or avatar.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "phone"},
					&cli.PathFlag{Name: "avatar", Usage: "Image file, 2MB at most."},
				},
				Action: func(c *cli.Context) error {
					var patch entities.UserPatch
					if c.IsSet("name") {
						name := c.String("name")
						patch.DisplayName = &name
					}
					if c.IsSet("phone") {
						phone := c.String("phone")
						patch.Phone = &phone
					}
					if c.IsSet("avatar") {
						avatar, err := application.LoadAvatar(c.Path("avatar"))
						if err != nil {
							return a.fail(err)
						}
						patch.ProfileImage = &avatar
					}
					user, err := a.session.UpdateProfile(c.Context, patch)
					if err != nil {
						return a.fail(err)
					}
					a.success("profile.updated", nil)
					a.renderUser(user)
					return nil
				},
			},
		},
	}
}

func (a *App) cityCommand() *cli.Command {
	return &cli.Command{
		Name:      "city",
		Usage:     "Show or change the selected city.",
		ArgsUsage: "[city]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				if err := a.session.SelectCity(c.Context, strings.Join(c.Args().Slice(), " ")); err != nil {
					return a.fail(err)
				}
			}
			a.println(a.t("city.selected", map[string]any{"City": a.session.SelectedCity(c.Context)}))
			return nil
		},
	}
}
