package cli

// exampleResumeText is a complete sample resume for trying the format
// command without supplying a file.
const exampleResumeText = `
John Doe
Software Engineer

john.doe@email.com | (123) 456-7890 | San Francisco, CA | linkedin.com/in/johndoe | johndoe.dev

## Professional Summary
Innovative and results-driven Software Engineer with over 8 years of experience in developing and scaling web applications. Proficient in JavaScript, React, and Node.js with a proven track record of delivering high-quality software solutions. Passionate about creating efficient, user-friendly applications and collaborating in agile environments.

## Professional Experience

**Tech Solutions Inc.** - Senior Frontend Engineer
*San Francisco, CA | Jan 2020 - Present*
- Led the development of a new customer-facing dashboard using React and TypeScript, improving user engagement by 25%.
- Architected and implemented a component library that reduced code duplication by 40% across multiple projects.
- Mentored junior engineers, conducting code reviews and providing technical guidance.

**Innovate Corp.** - Software Engineer
*Palo Alto, CA | Jun 2016 - Dec 2019*
- Developed and maintained a large-scale e-commerce platform using Node.js and Express, handling over 1 million daily transactions.
- Optimized database queries and backend logic, resulting in a 30% reduction in API response times.
- Collaborated with cross-functional teams to define and ship new features.

## Education

**University of California, Berkeley**
*Berkeley, CA | Graduated May 2016*
- Bachelor of Science in Computer Science
- GPA: 3.8/4.0

## Skills

- **Languages:** JavaScript (ES6+), TypeScript, Python, HTML5, CSS3
- **Frameworks/Libraries:** React, Node.js, Express, Redux, Next.js
- **Tools:** Git, Docker, Webpack, Jenkins, Jira
- **Databases:** PostgreSQL, MongoDB, Redis

## Certifications

- AWS Certified Developer - Associate (2021)
`
