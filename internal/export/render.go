package export

import (
	"fmt"
	"strings"

	"github.com/morganbevy/editor/internal/level"
)

// renderRON emits the level as Bevy-compatible Rust Object Notation.
//
// The structure mirrors what a Bevy scene loader expects: a named entity
// list with translation/rotation/scale transforms plus asset handles.
// Output is fully deterministic for a given level, which the golden tests
// rely on.
func renderRON(lvl level.Level) []byte {
	var b strings.Builder

	b.WriteString("(\n")
	fmt.Fprintf(&b, "    name: %q,\n", lvl.Name)
	b.WriteString("    entities: [\n")
	for _, obj := range lvl.Objects {
		b.WriteString("        (\n")
		fmt.Fprintf(&b, "            name: %q,\n", obj.Name)
		b.WriteString("            transform: (\n")
		fmt.Fprintf(&b, "                translation: (%s),\n", ronVec3(obj.Transform.Position))
		fmt.Fprintf(&b, "                rotation: (%s),\n", ronVec4(obj.Transform.Rotation))
		fmt.Fprintf(&b, "                scale: (%s),\n", ronVec3(obj.Transform.Scale))
		b.WriteString("            ),\n")
		fmt.Fprintf(&b, "            mesh: %s,\n", ronOption(obj.Mesh))
		fmt.Fprintf(&b, "            material: %s,\n", ronOption(obj.Material))
		fmt.Fprintf(&b, "            layer: %q,\n", obj.Layer)
		fmt.Fprintf(&b, "            tags: [%s],\n", ronStrings(obj.Tags))
		b.WriteString("        ),\n")
	}
	b.WriteString("    ],\n")
	b.WriteString("    bounds: (\n")
	fmt.Fprintf(&b, "        min: (%s),\n", ronVec3(lvl.Bounds.Min))
	fmt.Fprintf(&b, "        max: (%s),\n", ronVec3(lvl.Bounds.Max))
	b.WriteString("    ),\n")
	b.WriteString("    metadata: (\n")
	if lvl.GenerationSeed != nil {
		fmt.Fprintf(&b, "        generation_seed: Some(%d),\n", *lvl.GenerationSeed)
	} else {
		b.WriteString("        generation_seed: None,\n")
	}
	b.WriteString("        generator: \"BSP\",\n")
	fmt.Fprintf(&b, "        version: %q,\n", ExporterVersion)
	b.WriteString("    ),\n")
	b.WriteString(")\n")

	return []byte(b.String())
}

// renderRustCode generates a spawn_level_* function for direct inclusion in
// a Bevy project.
func renderRustCode(lvl level.Level) []byte {
	var b strings.Builder
	fnName := strings.ToLower(strings.ReplaceAll(lvl.Name, " ", "_"))

	b.WriteString("// Generated level code for Bevy\n")
	b.WriteString("// This file was auto-generated by Morgan-Bevy Level Editor\n\n")
	b.WriteString("use bevy::prelude::*;\n")
	b.WriteString("use bevy::asset::Handle;\n\n")

	fmt.Fprintf(&b, "pub fn spawn_level_%s(commands: &mut Commands, asset_server: &Res<AssetServer>) {\n", fnName)
	for _, obj := range lvl.Objects {
		fmt.Fprintf(&b, "    // %s\n    commands.spawn((\n", obj.Name)
		fmt.Fprintf(&b, "        Transform::from_translation(Vec3::new(%.2f, %.2f, %.2f))\n",
			obj.Transform.Position[0], obj.Transform.Position[1], obj.Transform.Position[2])
		fmt.Fprintf(&b, "            .with_rotation(Quat::from_xyzw(%.4f, %.4f, %.4f, %.4f))\n",
			obj.Transform.Rotation[0], obj.Transform.Rotation[1],
			obj.Transform.Rotation[2], obj.Transform.Rotation[3])
		fmt.Fprintf(&b, "            .with_scale(Vec3::new(%.2f, %.2f, %.2f)),\n",
			obj.Transform.Scale[0], obj.Transform.Scale[1], obj.Transform.Scale[2])

		if obj.Mesh != "" {
			fmt.Fprintf(&b, "        PbrBundle {\n            mesh: asset_server.load(%q),\n", obj.Mesh)
			if obj.Material != "" {
				fmt.Fprintf(&b, "            material: asset_server.load(%q),\n", obj.Material)
			} else {
				b.WriteString("            material: asset_server.load(\"materials/default.mat\"),\n")
			}
			b.WriteString("            ..default()\n        },\n")
		}

		fmt.Fprintf(&b, "        Name::new(%q),\n", obj.Name)
		for _, tag := range obj.Tags {
			fmt.Fprintf(&b, "        // Tag: %s\n", tag)
		}
		b.WriteString("    ));\n\n")
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "pub fn get_level_%s_bounds() -> (Vec3, Vec3) {\n", fnName)
	fmt.Fprintf(&b, "    (Vec3::new(%.2f, %.2f, %.2f), Vec3::new(%.2f, %.2f, %.2f))\n",
		lvl.Bounds.Min[0], lvl.Bounds.Min[1], lvl.Bounds.Min[2],
		lvl.Bounds.Max[0], lvl.Bounds.Max[1], lvl.Bounds.Max[2])
	b.WriteString("}\n")

	return []byte(b.String())
}

func ronVec3(v [3]float32) string {
	return fmt.Sprintf("%.3f, %.3f, %.3f", v[0], v[1], v[2])
}

func ronVec4(v [4]float32) string {
	return fmt.Sprintf("%.3f, %.3f, %.3f, %.3f", v[0], v[1], v[2], v[3])
}

func ronOption(s string) string {
	if s == "" {
		return "None"
	}
	return fmt.Sprintf("Some(%q)", s)
}

func ronStrings(tags []string) string {
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, ", ")
}
