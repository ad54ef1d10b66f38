package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOnboarding(t *testing.T) {
	ctx := context.Background()

	t.Run("full name step saves and advances", func(t *testing.T) {
		f := newFixture(t)
		me := newUser("me")
		profile := profileOf(me)
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profile, nil).AnyTimes()
		f.profiles.EXPECT().Update(gomock.Any(), profile).Return(nil)
		f.profiles.EXPECT().UpdateOnboarding(gomock.Any(), profile.ID, true, 2).Return(nil)

		state, err := f.onboarding.Advance(ctx, me, 1, service.StepInput{FullName: " Maria Smith "})
		require.NoError(t, err)
		assert.Equal(t, 2, state.Step)
		assert.True(t, state.Enabled)
		assert.Equal(t, "Maria Smith", profile.FullName)
	})

	t.Run("skip advances without acting", func(t *testing.T) {
		f := newFixture(t)
		me := newUser("me")
		profile := profileOf(me)
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profile, nil).AnyTimes()
		f.profiles.EXPECT().UpdateOnboarding(gomock.Any(), profile.ID, true, 4).Return(nil)

		state, err := f.onboarding.Advance(ctx, me, 3, service.StepInput{Skip: true})
		require.NoError(t, err)
		assert.Equal(t, 4, state.Step)
	})

	t.Run("tab step without organization is skipped with a notice", func(t *testing.T) {
		f := newFixture(t)
		me := newUser("me")
		f.outsider(me)
		profile := profileOf(me)
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profile, nil).AnyTimes()
		f.profiles.EXPECT().UpdateOnboarding(gomock.Any(), profile.ID, true, 3).Return(nil)

		state, err := f.onboarding.Advance(ctx, me, 2, service.StepInput{TabName: "Recipes"})
		require.NoError(t, err)
		assert.Equal(t, 3, state.Step)
		assert.NotEmpty(t, state.Notice)
	})

	t.Run("last step turns the wizard off", func(t *testing.T) {
		f := newFixture(t)
		me := newUser("me")
		profile := profileOf(me)
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profile, nil).AnyTimes()
		f.profiles.EXPECT().UpdateOnboarding(gomock.Any(), profile.ID, false, 5).Return(nil)

		state, err := f.onboarding.Advance(ctx, me, 42, service.StepInput{})
		require.NoError(t, err)
		assert.False(t, state.Enabled)
		assert.Equal(t, 5, state.Step)
	})

	t.Run("disabled wizard refuses steps", func(t *testing.T) {
		f := newFixture(t)
		me := newUser("me")
		profile := profileOf(me)
		profile.OnboardingEnabled = false
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profile, nil)

		_, err := f.onboarding.Advance(ctx, me, 1, service.StepInput{FullName: "x"})
		assert.ErrorIs(t, err, domain.ErrAuthorizationDenied)
	})

	t.Run("enable restarts at the first step", func(t *testing.T) {
		f := newFixture(t)
		me := newUser("me")
		profile := profileOf(me)
		profile.OnboardingEnabled = false
		profile.OnboardingStep = 4
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profile, nil)
		f.profiles.EXPECT().UpdateOnboarding(gomock.Any(), profile.ID, true, model.OnboardingFirstStep).Return(nil)

		state, err := f.onboarding.Enable(ctx, me)
		require.NoError(t, err)
		assert.Equal(t, 1, state.Step)
	})

	t.Run("invite step is optional", func(t *testing.T) {
		f := newFixture(t)
		me := newUser("me")
		profile := profileOf(me)
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profile, nil).AnyTimes()
		f.profiles.EXPECT().UpdateOnboarding(gomock.Any(), profile.ID, true, 5).Return(nil)

		state, err := f.onboarding.Advance(ctx, me, 4, service.StepInput{})
		require.NoError(t, err)
		assert.Equal(t, 5, state.Step)
		assert.Empty(t, state.Notice)
	})
}
